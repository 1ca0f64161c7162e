package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-daycalendar/internal/engine"
	"github.com/tartampluch/go-daycalendar/internal/render"
)

func newHTML(t *testing.T) *render.HTML {
	t.Helper()
	h, err := render.NewHTML("nl")
	require.NoError(t, err)
	return h
}

func TestNewHTML_InvalidLanguage(t *testing.T) {
	_, err := render.NewHTML("not a language tag!")
	assert.Error(t, err)
}

func TestHTML_Index(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newHTML(t).Index(&buf, render.IndexPage{BasePath: "/verjaardagskalender"}))

	page := buf.String()
	assert.Contains(t, page, "Op deze pagina wordt een verjaardagskalender getoond wanneer je ingelogd bent met een google-account")
	assert.Contains(t, page, `href="/verjaardagskalender/login"`)
	assert.NotContains(t, page, "Uitloggen")
}

func TestHTML_Months_CollatedAndToday(t *testing.T) {
	cal := engine.NewCalendar()
	for _, name := range []string{"zoë", "Émile", "anna", "Bob"} {
		require.NoError(t, engine.PlaceAnniversary(cal, name, engine.DateRecord{Month: 3, Day: 14}))
	}
	today := time.Date(2024, 12, 23, 0, 0, 0, 0, time.Local)

	months := newHTML(t).Months(cal, today)
	require.Len(t, months, 12)
	assert.Equal(t, "maart", months[2].Name)

	require.Len(t, months[2].Days, 1)
	var labels []string
	for _, e := range months[2].Days[0].Entries {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{"anna", "Bob", "Émile", "zoë"}, labels)

	require.Len(t, months[11].Days, 1, "today is listed even without entries")
	assert.True(t, months[11].Days[0].Today)
	assert.Equal(t, 23, months[11].Days[0].Day)
	assert.Empty(t, months[0].Days)
}

func TestHTML_Calendar_EscapesLabels(t *testing.T) {
	cal := engine.NewCalendar()
	require.NoError(t, engine.PlaceAnniversary(cal, "<script>x</script>", engine.DateRecord{Month: 1, Day: 1}))

	var buf bytes.Buffer
	err := newHTML(t).Calendar(&buf, cal, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), render.CalendarPage{
		BasePath:   "/kal",
		User:       "Anna",
		ShowLogout: true,
	})
	require.NoError(t, err)

	page := buf.String()
	assert.NotContains(t, page, "<script>x</script>")
	assert.Contains(t, page, "&lt;script&gt;")
	assert.Contains(t, page, `class="today"`)
	assert.Contains(t, page, `href="/kal/kalender.ics"`)
	assert.Contains(t, page, `href="/kal/logout"`)
	assert.Contains(t, page, "(????)")
}
