package engine

import (
	"fmt"
	"time"
)

// Stats summarizes one build.
type Stats struct {
	Records       int
	Anniversaries int
	Milestones    int
}

// Builder turns normalized contacts into a populated Calendar.
type Builder struct {
	Window Window
}

// NewBuilder returns a Builder using w as milestone visibility window.
func NewBuilder(w Window) *Builder {
	return &Builder{Window: w}
}

// Build creates a fresh Calendar and places every birthday and event of
// records relative to today. The first invalid date aborts the build.
func (b *Builder) Build(records []PersonEntry, today time.Time) (*Calendar, Stats, error) {
	cal := NewCalendar()
	stats := Stats{Records: len(records)}

	for _, p := range records {
		name := ResolveName(p)

		if p.Birthday != nil {
			if err := b.place(cal, &stats, name, *p.Birthday, today); err != nil {
				return nil, stats, err
			}
		}
		for _, e := range p.Events {
			if err := b.place(cal, &stats, EventLabel(name, e.Type), e.Date, today); err != nil {
				return nil, stats, err
			}
		}
	}
	return cal, stats, nil
}

func (b *Builder) place(cal *Calendar, stats *Stats, label string, date DateRecord, today time.Time) error {
	if err := PlaceAnniversary(cal, label, date); err != nil {
		return fmt.Errorf("%q %s: %w", label, date, err)
	}
	stats.Anniversaries++

	placed, err := PlaceMilestone(cal, label, date, today, b.Window)
	if err != nil {
		return fmt.Errorf("%q %s: %w", label, date, err)
	}
	if placed {
		stats.Milestones++
	}
	return nil
}

// BuildContactCalendar builds the calendar for records as seen on today.
func BuildContactCalendar(records []PersonEntry, today time.Time, w Window) (*Calendar, error) {
	cal, _, err := NewBuilder(w).Build(records, today)
	return cal, err
}
