package engine

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/tartampluch/go-daycalendar/internal/config"
)

// monthLengths holds the skeleton's day counts. February always has 29 days so
// a leap-day anniversary has a home in every year.
var monthLengths = [config.MonthsPerYear]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Cell maps a display label to its display text for one month/day.
type Cell map[string]string

// Labels returns the cell's labels in byte order.
func (c Cell) Labels() []string {
	return slices.Sorted(maps.Keys(c))
}

// Calendar is a year of day cells stored as a fixed 12x31 arena indexed by
// (month-1, day-1). Slots for days that do not exist stay nil.
type Calendar struct {
	cells [config.MonthsPerYear][config.MaxMonthDays]Cell
}

// NewCalendar builds the empty skeleton: every valid day holds an empty Cell.
func NewCalendar() *Calendar {
	c := &Calendar{}
	for m := 1; m <= config.MonthsPerYear; m++ {
		for d := 1; d <= DaysIn(m); d++ {
			c.cells[m-1][d-1] = make(Cell)
		}
	}
	return c
}

// BuildEmptyCalendar is the entry point for callers that render an empty year.
func BuildEmptyCalendar() *Calendar {
	return NewCalendar()
}

// DaysIn returns the skeleton's number of days for month (1-12), 0 otherwise.
func DaysIn(month int) int {
	if month < 1 || month > config.MonthsPerYear {
		return 0
	}
	return monthLengths[month-1]
}

// daysInYearMonth returns the real length of month in year.
func daysInYearMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Cell returns the cell for month/day. The returned map is live: writes to it
// modify the calendar.
func (c *Calendar) Cell(month, day int) (Cell, error) {
	if month < 1 || month > config.MonthsPerYear || day < 1 || day > DaysIn(month) {
		return nil, fmt.Errorf("%w: %02d-%02d", ErrInvalidDate, month, day)
	}
	return c.cells[month-1][day-1], nil
}

// Each calls fn for every day of the skeleton in calendar order.
func (c *Calendar) Each(fn func(month, day int, cell Cell)) {
	for m := 1; m <= config.MonthsPerYear; m++ {
		for d := 1; d <= DaysIn(m); d++ {
			fn(m, d, c.cells[m-1][d-1])
		}
	}
}

// Len returns the number of labels across all cells.
func (c *Calendar) Len() int {
	n := 0
	c.Each(func(_, _ int, cell Cell) {
		n += len(cell)
	})
	return n
}
