package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-daycalendar/internal/config"
	"github.com/tartampluch/go-daycalendar/internal/engine"
)

// VCardSource reads contacts from a local .vcf file or a CardDAV/WebDAV URL.
type VCardSource struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
	Fetcher   VCardFetcher
}

// Fetch opens the configured stream and decodes every card carrying a BDAY or
// ANNIVERSARY. Malformed cards and dates are logged and skipped.
func (s *VCardSource) Fetch(ctx context.Context) ([]engine.PersonEntry, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompVCard,
		config.LogKeyMode, s.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	reader, err := s.acquireStream(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	records, total, err := decodeCards(ctx, reader)
	if err != nil {
		return nil, err
	}

	log.Debug("vCards decoded",
		config.LogKeyTotal, total,
		config.LogKeyRecords, len(records),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return records, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (s *VCardSource) acquireStream(ctx context.Context) (io.ReadCloser, error) {
	switch s.Mode {
	case config.SourceModeLocal:
		if s.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(s.LocalPath)
	case config.SourceModeWeb:
		if s.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if s.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return s.Fetcher.Fetch(ctx, s.WebURL, s.WebUser, s.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, s.Mode)
	}
}

func decodeCards(ctx context.Context, r io.Reader) ([]engine.PersonEntry, int, error) {
	decoder := vcard.NewDecoder(r)
	var records []engine.PersonEntry
	total := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, total, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep going: one broken card should not hide the others.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompVCard,
				config.LogKeyError, err)
			continue
		}
		total++

		if p, ok := cardToPerson(card); ok {
			records = append(records, p)
		}
	}
	return records, total, nil
}

// cardToPerson keeps cards that carry at least one usable date.
func cardToPerson(card vcard.Card) (engine.PersonEntry, bool) {
	var p engine.PersonEntry
	if name := cardName(card); name != "" {
		p.Names = []string{name}
	}

	if bday := card.Get(config.VCardBDAY); bday != nil && bday.Value != "" {
		if d, err := parseDate(bday.Value); err == nil {
			p.Birthday = &d
		} else {
			logSkippedDate(bday.Value)
		}
	}

	for _, f := range card[config.VCardAnniversary] {
		d, err := parseDate(f.Value)
		if err != nil {
			logSkippedDate(f.Value)
			continue
		}
		p.Events = append(p.Events, engine.Event{Type: config.VCardEventTypeAnnv, Date: d})
	}

	return p, p.Birthday != nil || len(p.Events) > 0
}

// cardName prefers FN (formatted) over N (structured).
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Name(); n != nil {
		return strings.Join(strings.Fields(n.GivenName+" "+n.FamilyName), " ")
	}
	return ""
}

func logSkippedDate(value string) {
	slog.Debug(config.MsgSkippedDate,
		config.LogKeyComponent, config.CompVCard,
		config.LogKeyValue, value)
}

// parseDate handles the vCard date forms, with and without year.
func parseDate(value string) (engine.DateRecord, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return engine.DateRecord{Year: t.Year(), YearKnown: true, Month: int(t.Month()), Day: t.Day()}, nil
		}
	}

	// Truncated dates are parsed against a leap year so --02-29 survives.
	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse(f, value); err == nil {
			safe := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return engine.DateRecord{Month: int(safe.Month()), Day: safe.Day()}, nil
		}
	}

	return engine.DateRecord{}, errors.New(config.ErrDateParse)
}
