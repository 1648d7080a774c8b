package plan

import "serviceplan/pkg/types"

// GroupByTeam buckets uploads by team label. Buckets appear in the order their
// team is first seen and keep the input order within each bucket.
func GroupByTeam(uploads []*types.Upload) []types.TeamUploads {
	index := make(map[string]int)
	out := make([]types.TeamUploads, 0)

	for _, u := range uploads {
		i, ok := index[u.Team]
		if !ok {
			i = len(out)
			index[u.Team] = i
			out = append(out, types.TeamUploads{Team: u.Team})
		}
		out[i].Uploads = append(out[i].Uploads, u)
	}

	return out
}
