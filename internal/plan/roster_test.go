package plan

import (
	"context"
	"net/url"
	"testing"

	"serviceplan/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterEditorFields(t *testing.T) {
	roster := types.Roster{types.FieldSermon: {"Anna", " Ben ", ""}}

	fields := RosterEditorFields(roster, types.LabelsFor(types.LanguageGerman))
	require.Len(t, fields, 13)

	assert.Equal(t, types.FieldWelcome, fields[0].Key)
	assert.Equal(t, "", fields[0].Value)

	assert.Equal(t, types.FieldSermon, fields[2].Key)
	assert.Equal(t, "📖 Predigt", fields[2].Label)
	assert.Equal(t, "Anna, Ben", fields[2].Value)

	for _, f := range fields {
		assert.NotEqual(t, types.FieldDate, f.Key)
	}
}

func TestParseRosterForm(t *testing.T) {
	values := url.Values{
		"sermon":     {"Anna, Ben ,, Clara"},
		"music_resp": {"  "},
		"comment":    {"Dora"},
		"date":       {"Eve"},
		"unknown":    {"Frank"},
	}

	roster := ParseRosterForm(values)

	assert.Equal(t, types.Roster{
		types.FieldSermon:  {"Anna", "Ben", "Clara"},
		types.FieldComment: {"Dora"},
	}, roster)
}

func TestSaveRoster(t *testing.T) {
	c, deps := newTestController(t)

	roster := types.Roster{types.FieldSermon: {"Anna"}}
	require.NoError(t, c.SaveRoster(context.Background(), roster))
	assert.Equal(t, roster, deps.roster.saved)

	got, err := c.Roster(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.Roster{}, got)
}
