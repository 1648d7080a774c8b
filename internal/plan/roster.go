package plan

import (
	"context"
	"net/url"

	"serviceplan/pkg/types"
)

// RosterField is one input of the roster editor.
type RosterField struct {
	Key   types.FieldKey
	Label string
	Value string
}

// RosterEditorFields returns one input per content field, pre-filled with
// the comma joined names.
func RosterEditorFields(roster types.Roster, labels types.Labels) []RosterField {
	fields := types.ContentFields()
	out := make([]RosterField, len(fields))
	for i, f := range fields {
		out[i] = RosterField{
			Key:   f.Key,
			Label: labels.Field(f.Key),
			Value: roster.Joined(f.Key),
		}
	}
	return out
}

// ParseRosterForm reads every content field input as a comma separated list.
// Fields without names are left out.
func ParseRosterForm(values url.Values) types.Roster {
	roster := types.Roster{}
	for _, key := range types.ContentFieldKeys() {
		names := types.SplitNames(values.Get(string(key)))
		if len(names) == 0 {
			continue
		}
		roster[key] = names
	}
	return roster
}

func (c *Controller) Roster(ctx context.Context) (types.Roster, error) {
	return c.roster.Roster(ctx)
}

// SaveRoster replaces the stored roster wholesale.
func (c *Controller) SaveRoster(ctx context.Context, roster types.Roster) error {
	if err := c.roster.SaveRoster(ctx, roster); err != nil {
		return err
	}
	c.logger.WithField("fields", len(roster)).Info("roster saved")
	return nil
}
