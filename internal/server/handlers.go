package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tartampluch/go-daycalendar/internal/config"
	"github.com/tartampluch/go-daycalendar/internal/contacts"
	"github.com/tartampluch/go-daycalendar/internal/engine"
	"github.com/tartampluch/go-daycalendar/internal/render"
)

// errUpstream marks failures of the contact source, answered with 502.
var errUpstream = errors.New(config.ErrContactsFetch)

func (s *CalendarServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	_, _ = w.Write([]byte(config.HTTPMsgOK))
}

// handleCalendar shows the calendar, or the landing page to visitors without
// a valid Google session.
func (s *CalendarServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	var (
		src  contacts.Source
		user string
	)

	if s.googleMode() {
		sess, ok := s.auth.Sessions.Get(r)
		if !ok || !sess.Valid() {
			slog.Debug(config.MsgTokenInvalid, config.LogKeyComponent, config.CompServer)
			var buf bytes.Buffer
			if err := s.html.Index(&buf, render.IndexPage{BasePath: s.basePath, User: sess.User}); err != nil {
				s.fail(w, err)
				return
			}
			writeConditional(w, r, config.MimeTextHTML, buf.Bytes())
			return
		}
		user = sess.User

		people, err := s.people(r.Context(), s.auth.Client(r.Context(), sess))
		if err != nil {
			s.fail(w, fmt.Errorf("%w: %w", errUpstream, err))
			return
		}
		src = people
	} else {
		src = s.source
	}

	cal, today, err := s.build(r.Context(), src)
	if err != nil {
		s.fail(w, err)
		return
	}

	var buf bytes.Buffer
	page := render.CalendarPage{BasePath: s.basePath, User: user, ShowLogout: s.googleMode()}
	if err := s.html.Calendar(&buf, cal, today, page); err != nil {
		s.fail(w, err)
		return
	}
	writeConditional(w, r, config.MimeTextHTML, buf.Bytes())
}

// handleICS serves the calendar as an iCalendar feed. Without a valid Google
// session the browser is sent through sign-in and back.
func (s *CalendarServer) handleICS(w http.ResponseWriter, r *http.Request) {
	src := s.source

	if s.googleMode() {
		sess, ok := s.auth.Sessions.Get(r)
		if !ok || !sess.Valid() {
			http.Redirect(w, r, s.auth.LoginURL(w, r, s.basePath+config.RouteICS), http.StatusFound)
			return
		}
		people, err := s.people(r.Context(), s.auth.Client(r.Context(), sess))
		if err != nil {
			s.fail(w, fmt.Errorf("%w: %w", errUpstream, err))
			return
		}
		src = people
	}

	cal, _, err := s.build(r.Context(), src)
	if err != nil {
		s.fail(w, err)
		return
	}

	data, err := render.ICS(cal, s.clock.Now())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeConditional(w, r, config.MimeTextCalendar, data)
}

func (s *CalendarServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.auth.LoginURL(w, r, s.landingPath()), http.StatusFound)
}

func (s *CalendarServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.auth.Sessions.Get(r); ok {
		slog.Info(config.MsgLoggedOut, config.LogKeyComponent, config.CompAuth, config.LogKeyUser, sess.User)
	}
	s.auth.Sessions.Delete(w, r)
	http.Redirect(w, r, s.landingPath(), http.StatusFound)
}

// handleAuthorize completes the OAuth flow and returns the browser to the page
// that started it.
func (s *CalendarServer) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	sess, err := s.auth.Callback(r.Context(), r)
	if err != nil {
		slog.Warn(config.MsgAuthFailed,
			config.LogKeyComponent, config.CompAuth,
			config.LogKeyError, err)
		http.Error(w, config.HTTPMsgBadRequest, http.StatusBadRequest)
		return
	}

	if people, err := s.people(r.Context(), s.auth.Client(r.Context(), sess)); err == nil {
		if name, err := people.Me(r.Context()); err == nil {
			sess.User = name
		} else {
			slog.Warn(config.MsgMeFailed, config.LogKeyComponent, config.CompAuth, config.LogKeyError, err)
		}
	}
	s.auth.Sessions.Put(sess)
	slog.Info(config.MsgLoggedIn, config.LogKeyComponent, config.CompAuth, config.LogKeyUser, sess.User)

	target := sess.ReturnPath
	if target == "" {
		target = s.landingPath()
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// build fetches the contacts and places them on a fresh calendar as seen
// today.
func (s *CalendarServer) build(ctx context.Context, src contacts.Source) (*engine.Calendar, time.Time, error) {
	start := time.Now()

	records, err := src.Fetch(ctx)
	if err != nil {
		s.metrics.RecordBuild(s.mode, time.Since(start), engine.Stats{}, err)
		return nil, time.Time{}, fmt.Errorf("%w: %w", errUpstream, err)
	}

	today := engine.Today(s.clock)
	cal, stats, err := engine.NewBuilder(s.window).Build(records, today)
	s.metrics.RecordBuild(s.mode, time.Since(start), stats, err)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%s: %w", config.ErrBuild, err)
	}

	slog.Info(config.MsgBuildSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyRecords, stats.Records),
			slog.Int(config.LogKeyAnnivs, stats.Anniversaries),
			slog.Int(config.LogKeyMilest, stats.Milestones),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return cal, today, nil
}

func (s *CalendarServer) fail(w http.ResponseWriter, err error) {
	slog.Error(config.MsgRequestFailed,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyError, err)

	if errors.Is(err, errUpstream) {
		http.Error(w, config.HTTPMsgBadGateway, http.StatusBadGateway)
		return
	}
	http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
}

func (s *CalendarServer) landingPath() string {
	if s.basePath == "" {
		return "/"
	}
	return s.basePath
}

