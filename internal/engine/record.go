package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-daycalendar/internal/config"
)

var (
	// ErrInvalidDate reports a DateRecord whose month or day cannot exist.
	ErrInvalidDate = errors.New(config.ErrDateRange)

	// ErrInvalidShowDays reports a visibility window outside [1,1000].
	ErrInvalidShowDays = errors.New(config.ErrShowDaysRange)
)

// DateRecord is a birthday or event date as delivered by a contact source.
// When YearKnown is false only the anniversary can be placed.
type DateRecord struct {
	Year      int
	YearKnown bool
	Month     int
	Day       int
}

// Event is a named, dated life event attached to a person ("anniversary", ...).
type Event struct {
	Type string
	Date DateRecord
}

// PersonEntry is the normalized contact handed to the Builder.
type PersonEntry struct {
	// Names holds the display names in source order; only the first is used.
	Names    []string
	Birthday *DateRecord
	Events   []Event
}

// Validate checks that the month/day pair has a cell in the calendar and, when
// the year is known, that the date exists in that year.
func (d DateRecord) Validate() error {
	if d.Month < 1 || d.Month > config.MonthsPerYear {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, d.Month)
	}
	if d.Day < 1 || d.Day > DaysIn(d.Month) {
		return fmt.Errorf("%w: %02d-%02d", ErrInvalidDate, d.Month, d.Day)
	}
	if d.YearKnown && d.Day > daysInYearMonth(d.Year, d.Month) {
		return fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, d.Year, d.Month, d.Day)
	}
	return nil
}

// String renders the date the way the contact sources print it.
func (d DateRecord) String() string {
	if !d.YearKnown {
		return fmt.Sprintf("--%02d-%02d", d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ResolveName returns the first display name of p, or config.FallbackName.
func ResolveName(p PersonEntry) string {
	if len(p.Names) == 0 || p.Names[0] == "" {
		return config.FallbackName
	}
	return p.Names[0]
}

// EventLabel composes the label under which an event of person name is shown.
func EventLabel(name, eventType string) string {
	if eventType == "" {
		eventType = config.FallbackEventType
	}
	return fmt.Sprintf(config.FormatEventName, name, eventType)
}
