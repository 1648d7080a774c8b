// Package schedule computes service dates.
package schedule

import (
	"context"
	"time"

	"github.com/teambition/rrule-go"
)

// LatestDater reports the latest stored service date, nil if none exist.
type LatestDater interface {
	LatestDate(ctx context.Context) (*time.Time, error)
}

// NextSunday returns the first Sunday after the calendar day of after, as
// seen in loc, at hour:00. A Sunday input yields the following Sunday, so the
// result is always strictly later than after.
func NextSunday(after time.Time, loc *time.Location, hour int) time.Time {
	if loc == nil {
		loc = time.Local
	}

	local := after.In(loc)
	nextDay := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   nextDay,
		Byweekday: []rrule.Weekday{rrule.SU},
		Byhour:    []int{hour},
		Byminute:  []int{0},
		Bysecond:  []int{0},
		Count:     1,
	})
	if err == nil {
		if occ := rule.All(); len(occ) > 0 {
			return occ[0].In(loc)
		}
	}

	// walk day by day if the rule could not be built
	d := nextDay
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc)
}

// Planner proposes the date of the next service to plan.
type Planner struct {
	entries LatestDater
	loc     *time.Location
	hour    int
	now     func() time.Time
}

func NewPlanner(entries LatestDater, loc *time.Location, hour int, now func() time.Time) *Planner {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Planner{entries: entries, loc: loc, hour: hour, now: now}
}

// NextAvailableSunday returns the Sunday service slot following the latest
// stored entry, or following now when nothing is stored.
func (p *Planner) NextAvailableSunday(ctx context.Context) (time.Time, error) {
	latest, err := p.entries.LatestDate(ctx)
	if err != nil {
		return time.Time{}, err
	}

	start := p.now()
	if latest != nil {
		start = *latest
	}

	return NextSunday(start, p.loc, p.hour), nil
}

func (p *Planner) Location() *time.Location {
	return p.loc
}

func (p *Planner) Now() time.Time {
	return p.now()
}
