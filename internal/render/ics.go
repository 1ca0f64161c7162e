package render

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-daycalendar/internal/config"
	"github.com/tartampluch/go-daycalendar/internal/engine"
)

// ICS encodes every entry of cal as an all-day VEVENT on the next occurrence
// of its month/day, counted from now. An empty calendar yields a stub
// VCALENDAR so subscribed clients keep the feed.
func ICS(cal *engine.Calendar, now time.Time) ([]byte, error) {
	out := ical.NewCalendar()
	out.Props.SetText(config.PropVersion, config.ICalVersion)
	out.Props.SetText(config.PropProdid, config.ICalProdid)
	out.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	out.Props.SetText(config.PropCalScale, config.ICalScale)
	out.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	out.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	cal.Each(func(month, day int, cell engine.Cell) {
		for _, label := range cell.Labels() {
			event := newEvent(label, cell[label], month, day, now)
			event.Props.Set(dtStampProp)
			out.Children = append(out.Children, event.Component)
		}
	})

	if len(out.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(out); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgICSEncoded,
		config.LogKeyComponent, config.CompRender,
		config.LogKeyCount, len(out.Children),
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

func newEvent(label, text string, month, day int, now time.Time) *ical.Event {
	date := nextOccurrence(now, month, day)

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(label, month, day, date.Year()))
	event.Props.SetText(config.PropSummary, fmt.Sprintf(config.FormatSummary, label, text))
	event.Props.SetText(config.PropDescription, text)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(date)
	event.Props.Set(dtStartProp)
	return event
}

// eventUID is stable across refreshes as long as the entry stays on the same
// day of the same year.
func eventUID(label string, month, day, year int) string {
	input := fmt.Sprintf(config.FormatHashInput, label, month, day, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), year, config.ICalDomain)
}

// nextOccurrence returns the first date on or after now's calendar day that
// falls on month/day. time.Date normalizes Feb 29 to March 1 in non-leap years.
func nextOccurrence(now time.Time, month, day int) time.Time {
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	candidate := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, time.Month(month), day, 0, 0, 0, 0, loc)
	}
	return candidate
}
