package calendar

import (
	"strings"
	"testing"
	"time"

	"serviceplan/pkg/types"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryUIDStable(t *testing.T) {
	assert.Equal(t, EntryUID(7), EntryUID(7))
	assert.NotEqual(t, EntryUID(7), EntryUID(8))
}

func TestBuild(t *testing.T) {
	start := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)
	entries := []*types.ServiceEntry{
		{ID: 7, Date: start, Sermon: "Anna"},
		{ID: 8, Date: start.AddDate(0, 0, 7)},
	}

	cal := Build(entries, Options{
		Name:     "Gottesdienste",
		Title:    "Gottesdienst",
		Duration: time.Hour,
		Labels:   types.LabelsFor(types.LanguageGerman),
		Link:     func(id int64) string { return "https://plan.example/plan/form?edit_id=7" },
		Stamp:    start,
	})

	out := cal.Serialize()
	assert.Contains(t, out, "SUMMARY:Gottesdienst: Anna")
	assert.Contains(t, out, "DESCRIPTION:📖 Predigt: Anna")
	assert.Contains(t, out, "X-WR-CALNAME:Gottesdienste")

	parsed, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := parsed.Events()
	require.Len(t, events, 2)

	assert.Equal(t, EntryUID(7), events[0].Id())

	got, err := events[0].GetStartAt()
	require.NoError(t, err)
	assert.True(t, got.Equal(start))

	end, err := events[0].GetEndAt()
	require.NoError(t, err)
	assert.True(t, end.Equal(start.Add(time.Hour)))

	summary := events[1].GetProperty(ical.ComponentPropertySummary)
	require.NotNil(t, summary)
	assert.Equal(t, "Gottesdienst", summary.Value)
	assert.Nil(t, events[1].GetProperty(ical.ComponentPropertyDescription))
}

func TestBuildEmpty(t *testing.T) {
	cal := Build(nil, Options{Title: "Service"})
	assert.Empty(t, cal.Events())
	assert.Contains(t, cal.Serialize(), "BEGIN:VCALENDAR")
}
