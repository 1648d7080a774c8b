package plan

import (
	"errors"
	"strings"
	"time"

	"serviceplan/pkg/types"
)

var ErrInvalidDate = errors.New("invalid service date")

// ParseEntryForm converts a decoded form into an entry. The date is read as
// wall time in loc.
func ParseEntryForm(form types.EntryForm, loc *time.Location) (*types.ServiceEntry, error) {
	date, err := parseFormDate(form.Date, loc)
	if err != nil {
		return nil, err
	}

	entry := EntryFromForm(form)
	entry.Date = date
	return entry, nil
}

// EntryFromForm copies the submitted fields into an entry without the date.
func EntryFromForm(form types.EntryForm) *types.ServiceEntry {
	return &types.ServiceEntry{
		ID:               form.EditID,
		Welcome:          form.Welcome,
		Moderation:       form.Moderation,
		Sermon:           form.Sermon,
		Kids1Topic:       form.Kids1Topic,
		Kids1Resp:        form.Kids1Resp,
		Kids2Topic:       form.Kids2Topic,
		Kids2Resp:        form.Kids2Resp,
		MusicKeys:        form.MusicKeys,
		MusicResp:        form.MusicResp,
		TechSound:        form.TechSound,
		TechPresentation: form.TechPresentation,
		Info:             form.Info,
		Comment:          form.Comment,
	}
}

func parseFormDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	// browsers may submit seconds
	for _, layout := range []string{types.DateInputLayout, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// FormDateValue formats t for a datetime-local input in loc.
func FormDateValue(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(types.DateInputLayout)
}
