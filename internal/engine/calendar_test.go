package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-daycalendar/internal/engine"
)

// TestNewCalendar_Skeleton verifies the month lengths of the empty calendar and
// that every cell exists before any data is written.
func TestNewCalendar_Skeleton(t *testing.T) {
	expected := []int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	cal := engine.BuildEmptyCalendar()

	for m := 1; m <= 12; m++ {
		assert.Equal(t, expected[m-1], engine.DaysIn(m), "month %d", m)
		for d := 1; d <= expected[m-1]; d++ {
			cell, err := cal.Cell(m, d)
			require.NoError(t, err, "%02d-%02d", m, d)
			assert.NotNil(t, cell)
			assert.Empty(t, cell)
		}
	}
	assert.Zero(t, cal.Len())
}

func TestCalendar_CellOutOfRange(t *testing.T) {
	cal := engine.NewCalendar()

	tests := []struct {
		name       string
		month, day int
	}{
		{"Month zero", 0, 1},
		{"Month thirteen", 13, 1},
		{"Day zero", 5, 0},
		{"April 31", 4, 31},
		{"February 30", 2, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cal.Cell(tt.month, tt.day)
			assert.ErrorIs(t, err, engine.ErrInvalidDate)
		})
	}

	// Feb 29 always exists in the skeleton.
	_, err := cal.Cell(2, 29)
	assert.NoError(t, err)
}

func TestCalendar_EachVisitsEveryDay(t *testing.T) {
	cal := engine.NewCalendar()
	days := 0
	lastMonth, lastDay := 0, 0
	cal.Each(func(month, day int, cell engine.Cell) {
		days++
		assert.NotNil(t, cell)
		lastMonth, lastDay = month, day
	})
	assert.Equal(t, 366, days)
	assert.Equal(t, 12, lastMonth)
	assert.Equal(t, 31, lastDay)
}

func TestCell_LabelsSorted(t *testing.T) {
	cell := engine.Cell{"Zoë": "(1990)", "Anna": "(????)", "Bram (wedding)": "(2010)"}
	assert.Equal(t, []string{"Anna", "Bram (wedding)", "Zoë"}, cell.Labels())
}

// TestCalendars_AreIndependent ensures two builds never share cell maps.
func TestCalendars_AreIndependent(t *testing.T) {
	a := engine.NewCalendar()
	b := engine.NewCalendar()

	cellA, err := a.Cell(1, 1)
	require.NoError(t, err)
	cellA["X"] = "(2000)"

	cellB, err := b.Cell(1, 1)
	require.NoError(t, err)
	assert.Empty(t, cellB)
}
