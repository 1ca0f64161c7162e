package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-daycalendar/internal/config"
)

// Anniversaries are written unconditionally, milestones only inside the Window.

// PlaceAnniversary writes label on the date's month/day with the year in
// parentheses, or config.UnknownYear when the year is unknown. An existing
// entry for the same label on that day is overwritten.
func PlaceAnniversary(cal *Calendar, label string, date DateRecord) error {
	if err := date.Validate(); err != nil {
		return err
	}
	cell, err := cal.Cell(date.Month, date.Day)
	if err != nil {
		return err
	}
	cell[label] = formatYear(date)
	return nil
}

// PlaceMilestone writes "<n> dagen" on the day the next multiple of 1000 days
// since date is reached, provided w considers it due relative to today.
// It reports whether an entry was written. Dates without a year are skipped.
func PlaceMilestone(cal *Calendar, label string, date DateRecord, today time.Time, w Window) (bool, error) {
	if !date.YearKnown {
		return false, nil
	}
	if err := date.Validate(); err != nil {
		return false, err
	}

	age := DaysBetween(date, today)
	if !w.IsDue(age) {
		return false, nil
	}

	occurrence, count := nextMilestone(age, today)
	cell, err := cal.Cell(int(occurrence.Month()), occurrence.Day())
	if err != nil {
		return false, err
	}
	cell[label] = fmt.Sprintf(config.FormatMilestone, count)
	return true, nil
}

// DaysBetween returns the whole number of days from date to today's calendar
// date, negative when date lies in the future.
func DaysBetween(date DateRecord, today time.Time) int {
	y, m, d := today.Date()
	from := time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, time.UTC)
	to := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	// Unix seconds rather than Time.Sub: Duration saturates after ~292 years.
	return int((to.Unix() - from.Unix()) / (config.HoursPerDay * 60 * 60))
}

// nextMilestone projects the celebration date and the day count reached on it.
func nextMilestone(age int, today time.Time) (time.Time, int) {
	r := age % config.MilestoneInterval
	if r == 0 {
		return today, age
	}
	ahead := config.MilestoneInterval - r
	y, m, d := today.Date()
	return time.Date(y, m, d+ahead, 0, 0, 0, 0, time.UTC), age + ahead
}

func formatYear(date DateRecord) string {
	if !date.YearKnown {
		return config.UnknownYear
	}
	return fmt.Sprintf(config.FormatYear, date.Year)
}
