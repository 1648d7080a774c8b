package seed

import (
	"context"
	"fmt"
	"io"
	"sort"

	"serviceplan/pkg/types"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type RosterSaver interface {
	SaveRoster(ctx context.Context, roster types.Roster) error
}

// LoadRoster reads a roster file. Each key is a content field; its value is
// either a list of names or a single comma separated string:
//
//	sermon: [Anna, Ben]
//	music_resp: "Clara, Dora"
func LoadRoster(r io.Reader) (types.Roster, error) {
	var doc map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return types.Roster{}, nil
		}
		return nil, fmt.Errorf("failed to decode roster file: %w", err)
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	roster := types.Roster{}
	for _, k := range keys {
		key := types.FieldKey(k)
		if !types.IsContentField(key) {
			return nil, fmt.Errorf("roster file: unknown field %q", k)
		}

		node := doc[k]
		var names []string
		switch node.Kind {
		case yaml.ScalarNode:
			names = types.SplitNames(node.Value)
		case yaml.SequenceNode:
			if err := node.Decode(&names); err != nil {
				return nil, fmt.Errorf("roster file: field %q: %w", k, err)
			}
			names = types.CleanNames(names)
		default:
			return nil, fmt.Errorf("roster file: field %q must be a list or a string", k)
		}

		if len(names) > 0 {
			roster[key] = names
		}
	}

	return roster, nil
}

// SeedRoster replaces the stored roster with roster.
func SeedRoster(ctx context.Context, repo RosterSaver, roster types.Roster) error {
	if err := repo.SaveRoster(ctx, roster); err != nil {
		return err
	}

	for _, key := range types.ContentFieldKeys() {
		if names := roster.Names(key); len(names) > 0 {
			logrus.WithField("field", key).WithField("names", len(names)).Debug("seeded roster field")
		}
	}

	return nil
}
