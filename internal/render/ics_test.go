package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-daycalendar/internal/config"
	"github.com/tartampluch/go-daycalendar/internal/engine"
)

func TestNextOccurrence(t *testing.T) {
	// Reference "Now": June 15th, 2025 (non-leap), mid-day.
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		desc       string
		month, day int
		expected   time.Time
	}{
		{"later this year", 12, 25, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)},
		{"already passed", 1, 1, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"today counts as next", 6, 15, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"yesterday rolls over", 6, 14, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)},
		{"leap day in non-leap year", 2, 29, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.expected, nextOccurrence(now, tt.month, tt.day))
		})
	}
}

func TestNextOccurrence_LeapYearContext(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), nextOccurrence(now, 2, 29),
		"In a leap year, the date should be Feb 29, not Mar 1")
}

func TestEventUID_Stable(t *testing.T) {
	a := eventUID("Anna", 2, 3, 2025)
	assert.Equal(t, a, eventUID("Anna", 2, 3, 2025))
	assert.NotEqual(t, a, eventUID("Anna", 2, 4, 2025))
	assert.NotEqual(t, a, eventUID("Anna (anniversary)", 2, 3, 2025))
	assert.True(t, strings.HasSuffix(a, "-2025@"+config.ICalDomain))
}

func TestICS_Empty(t *testing.T) {
	data, err := ICS(engine.BuildEmptyCalendar(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestICS_OneEventPerEntry(t *testing.T) {
	cal := engine.NewCalendar()
	require.NoError(t, engine.PlaceAnniversary(cal, "Anna", engine.DateRecord{Year: 2001, YearKnown: true, Month: 2, Day: 3}))
	require.NoError(t, engine.PlaceAnniversary(cal, "Bob", engine.DateRecord{Month: 2, Day: 3}))
	cell, err := cal.Cell(9, 25)
	require.NoError(t, err)
	cell["Anna"] = "9000 dagen"

	now := time.Date(2024, 12, 23, 9, 0, 0, 0, time.UTC)
	data, err := ICS(cal, now)
	require.NoError(t, err)

	icsStr := string(data)
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
	assert.Contains(t, icsStr, "SUMMARY:Anna (2001)")
	assert.Contains(t, icsStr, "SUMMARY:Bob (????)")
	assert.Contains(t, icsStr, "SUMMARY:Anna 9000 dagen")
	assert.Contains(t, icsStr, "X-WR-CALNAME:"+config.ICalCalName)

	parsed, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	events := parsed.Events()
	require.Len(t, events, 3)

	starts := map[string]time.Time{}
	for _, e := range events {
		summary, err := e.Props.Text(config.PropSummary)
		require.NoError(t, err)
		start, err := e.DateTimeStart(time.UTC)
		require.NoError(t, err)
		starts[summary] = start
	}
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), starts["Anna (2001)"])
	assert.Equal(t, time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC), starts["Anna 9000 dagen"])
}
