// Package render turns a built engine.Calendar into an HTML page or an
// iCalendar feed.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/tartampluch/go-daycalendar/internal/config"
	"github.com/tartampluch/go-daycalendar/internal/engine"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templatesFS embed.FS

var monthNames = [config.MonthsPerYear]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// Entry is one label of a day as shown on the page.
type Entry struct {
	Label string
	Text  string
}

type Day struct {
	Day     int
	Today   bool
	Entries []Entry
}

type Month struct {
	Name string
	Days []Day
}

// IndexPage is the data of the landing page shown to signed-out visitors.
type IndexPage struct {
	Title    string
	BasePath string
	User     string
}

// CalendarPage is the data of the calendar page. Only days with entries, and
// today, are listed.
type CalendarPage struct {
	Title      string
	BasePath   string
	User       string
	ShowLogout bool
	Months     []Month
}

// HTML renders the embedded page templates.
type HTML struct {
	tmpl *template.Template
	lang language.Tag
}

// NewHTML parses the templates. lang selects the collation used to order the
// labels of a day.
func NewHTML(lang string) (*HTML, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplate, err)
	}
	tmpl, err := template.ParseFS(templatesFS, config.TemplatePattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrTemplate, err)
	}
	return &HTML{tmpl: tmpl, lang: tag}, nil
}

// Index writes the landing page.
func (h *HTML) Index(w io.Writer, page IndexPage) error {
	if page.Title == "" {
		page.Title = config.PageTitle
	}
	return h.execute(w, config.TemplateIndex, page)
}

// Calendar writes the calendar page for cal, highlighting today.
func (h *HTML) Calendar(w io.Writer, cal *engine.Calendar, today time.Time, page CalendarPage) error {
	if page.Title == "" {
		page.Title = config.PageTitle
	}
	page.Months = h.Months(cal, today)
	return h.execute(w, config.TemplateCalendar, page)
}

// Months lays cal out per month. Labels of a day are ordered with the
// renderer's collation so accented and mixed-case names sort naturally.
func (h *HTML) Months(cal *engine.Calendar, today time.Time) []Month {
	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(h.lang, collate.IgnoreCase)

	months := make([]Month, config.MonthsPerYear)
	for i := range months {
		months[i].Name = monthNames[i]
	}

	cal.Each(func(month, day int, cell engine.Cell) {
		isToday := int(today.Month()) == month && today.Day() == day
		if len(cell) == 0 && !isToday {
			return
		}

		labels := cell.Labels()
		col.SortStrings(labels)

		entries := make([]Entry, 0, len(labels))
		for _, l := range labels {
			entries = append(entries, Entry{Label: l, Text: cell[l]})
		}
		months[month-1].Days = append(months[month-1].Days, Day{Day: day, Today: isToday, Entries: entries})
	})
	return months
}

func (h *HTML) execute(w io.Writer, name string, data any) error {
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrTemplate, err)
	}
	return nil
}
