package contacts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-daycalendar/internal/config"
	"github.com/tartampluch/go-daycalendar/internal/engine"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
)

// PeopleSource reads the signed-in user's Google contacts.
type PeopleSource struct {
	svc *people.Service
}

// NewPeopleSource creates the People API client. Callers pass
// option.WithHTTPClient with an OAuth2 client for the user.
func NewPeopleSource(ctx context.Context, opts ...option.ClientOption) (*PeopleSource, error) {
	svc, err := people.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPeopleService, err)
	}
	return &PeopleSource{svc: svc}, nil
}

// Fetch pages through people/me/connections and normalizes every contact
// that carries a birthday or an event date.
func (s *PeopleSource) Fetch(ctx context.Context) ([]engine.PersonEntry, error) {
	log := slog.With(config.LogKeyComponent, config.CompPeople)
	log.InfoContext(ctx, config.MsgSyncStarted)

	var records []engine.PersonEntry
	pageToken := ""
	for page := 1; page <= config.PeopleMaxPages; page++ {
		call := s.svc.People.Connections.List(config.PeopleResource).
			PersonFields(config.PeopleFields).
			PageSize(config.PeoplePageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrPeopleList, err)
		}

		for _, p := range resp.Connections {
			if entry, ok := personToEntry(p); ok {
				records = append(records, entry)
			}
		}
		log.Debug(config.MsgPageFetched,
			config.LogKeyPage, page,
			config.LogKeyCount, len(resp.Connections))

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return records, nil
		}
	}

	log.Warn("Connection paging stopped at page limit", config.LogKeyPage, config.PeopleMaxPages)
	return records, nil
}

// Me returns the display name (or e-mail address) of the signed-in user.
func (s *PeopleSource) Me(ctx context.Context) (string, error) {
	p, err := s.svc.People.Get(config.PeopleResource).
		PersonFields(config.PeopleFieldsMe).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrPeopleMe, err)
	}
	if len(p.Names) > 0 && p.Names[0].DisplayName != "" {
		return p.Names[0].DisplayName, nil
	}
	if len(p.EmailAddresses) > 0 {
		return p.EmailAddresses[0].Value, nil
	}
	return "", nil
}

// personToEntry uses the first birthday and every dated event of p.
func personToEntry(p *people.Person) (engine.PersonEntry, bool) {
	var entry engine.PersonEntry
	for _, n := range p.Names {
		entry.Names = append(entry.Names, n.DisplayName)
	}

	if len(p.Birthdays) > 0 {
		if d, ok := toDateRecord(p.Birthdays[0].Date); ok {
			entry.Birthday = &d
		}
	}

	for _, e := range p.Events {
		d, ok := toDateRecord(e.Date)
		if !ok {
			continue
		}
		entry.Events = append(entry.Events, engine.Event{Type: e.Type, Date: d})
	}

	return entry, entry.Birthday != nil || len(entry.Events) > 0
}

// toDateRecord converts a People API date. Year 0 means the year is unknown;
// dates without month or day cannot be placed.
func toDateRecord(d *people.Date) (engine.DateRecord, bool) {
	if d == nil {
		return engine.DateRecord{}, false
	}
	if d.Month == 0 || d.Day == 0 {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompPeople,
			config.LogKeyValue, fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day))
		return engine.DateRecord{}, false
	}
	return engine.DateRecord{
		Year:      int(d.Year),
		YearKnown: d.Year != 0,
		Month:     int(d.Month),
		Day:       int(d.Day),
	}, true
}
