package types

import "strings"

// RosterSettingName is the settings row holding the roster blob.
const RosterSettingName = "church_service_teams"

// Roster maps a content field to the names suggested for it.
type Roster map[FieldKey][]string

// Names returns the normalized names for key.
func (r Roster) Names(key FieldKey) []string {
	return CleanNames(r[key])
}

// Joined returns the names for key as a comma separated list.
func (r Roster) Joined(key FieldKey) string {
	return strings.Join(r.Names(key), ", ")
}

// Normalize returns a copy with names trimmed, empty names dropped and
// fields without names removed.
func (r Roster) Normalize() Roster {
	out := make(Roster, len(r))
	for key, names := range r {
		clean := CleanNames(names)
		if len(clean) == 0 {
			continue
		}
		out[key] = clean
	}
	return out
}

// SplitNames splits a comma separated input into clean names.
func SplitNames(input string) []string {
	return CleanNames(strings.Split(input, ","))
}

func CleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
