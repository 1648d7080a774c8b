// Package calendar renders service entries as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"serviceplan/pkg/types"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const productID = "-//serviceplan//service plan feed//EN"

var uidNamespace = uuid.MustParse("6b1f5e0e-3f0a-4c59-9d8e-6a3c2f51b7d2")

type Options struct {
	Name     string
	Title    string
	Duration time.Duration
	Labels   types.Labels
	// Link returns the absolute URL of an entry, or "" for none.
	Link func(id int64) string
	// Stamp is written as DTSTAMP of every event.
	Stamp time.Time
}

// EntryUID is the stable UID of the event for entry id.
func EntryUID(id int64) string {
	return uuid.NewSHA1(uidNamespace, []byte(fmt.Sprintf("service-entry-%d", id))).String()
}

// Build returns a calendar with one event per entry.
func Build(entries []*types.ServiceEntry, opts Options) *ical.Calendar {
	if opts.Duration <= 0 {
		opts.Duration = 90 * time.Minute
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	for _, e := range entries {
		event := cal.AddEvent(EntryUID(e.ID))
		event.SetDtStampTime(opts.Stamp)
		event.SetStartAt(e.Date)
		event.SetEndAt(e.Date.Add(opts.Duration))
		event.SetSummary(summary(e, opts.Title))

		if desc := description(e, opts.Labels); desc != "" {
			event.SetDescription(desc)
		}
		if opts.Link != nil {
			if link := opts.Link(e.ID); link != "" {
				event.SetURL(link)
			}
		}
	}

	return cal
}

func summary(e *types.ServiceEntry, title string) string {
	if e.Sermon == "" {
		return title
	}
	return title + ": " + e.Sermon
}

func description(e *types.ServiceEntry, labels types.Labels) string {
	var lines []string
	for _, f := range types.ContentFields() {
		v := strings.TrimSpace(e.Value(f.Key))
		if v == "" {
			continue
		}
		lines = append(lines, labels.Field(f.Key)+": "+v)
	}
	return strings.Join(lines, "\n")
}
