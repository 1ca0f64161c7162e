// Package server exposes the day calendar over HTTP: the calendar page, its
// iCalendar feed, the Google sign-in flow, health and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tartampluch/go-daycalendar/internal/auth"
	"github.com/tartampluch/go-daycalendar/internal/config"
	"github.com/tartampluch/go-daycalendar/internal/contacts"
	"github.com/tartampluch/go-daycalendar/internal/engine"
	"github.com/tartampluch/go-daycalendar/internal/render"
	"google.golang.org/api/option"
)

// PeopleClient is the per-user contact source of Google mode.
type PeopleClient interface {
	contacts.Source
	Me(ctx context.Context) (string, error)
}

// PeopleFactory creates a PeopleClient on top of an authorized HTTP client.
type PeopleFactory func(ctx context.Context, client *http.Client) (PeopleClient, error)

// NewPeopleClient is the PeopleFactory backed by the Google People API.
func NewPeopleClient(ctx context.Context, client *http.Client) (PeopleClient, error) {
	return contacts.NewPeopleSource(ctx, option.WithHTTPClient(client))
}

// Options wires the collaborators of a Server.
type Options struct {
	Listen   string
	BasePath string
	Mode     string
	Window   engine.Window
	Clock    engine.Clock
	HTML     *render.HTML
	Metrics  *Metrics

	// Google mode.
	Auth   *auth.Authenticator
	People PeopleFactory

	// Local and web modes.
	Source contacts.Source
}

// CalendarServer builds a fresh calendar for every request.
type CalendarServer struct {
	listen   string
	basePath string
	mode     string
	window   engine.Window
	clock    engine.Clock
	html     *render.HTML
	metrics  *Metrics
	auth     *auth.Authenticator
	people   PeopleFactory
	source   contacts.Source
}

// NewCalendarServer creates a server from opts.
func NewCalendarServer(opts Options) *CalendarServer {
	s := &CalendarServer{
		listen:   opts.Listen,
		basePath: opts.BasePath,
		mode:     opts.Mode,
		window:   opts.Window,
		clock:    opts.Clock,
		html:     opts.HTML,
		metrics:  opts.Metrics,
		auth:     opts.Auth,
		people:   opts.People,
		source:   opts.Source,
	}
	if s.clock == nil {
		s.clock = engine.RealClock{}
	}
	if s.people == nil {
		s.people = NewPeopleClient
	}
	return s
}

func (s *CalendarServer) googleMode() bool {
	return s.mode == config.SourceModeGoogle
}

// Handler returns the router serving every route of the server.
func (s *CalendarServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(config.RouteHealth, s.handleHealth)
	if s.metrics != nil {
		r.Handle(config.RouteMetrics, s.metrics.Handler())
	}

	r.HandleFunc(s.basePath+"/", readOnly(s.handleCalendar))
	if s.basePath != "" {
		r.HandleFunc(s.basePath, readOnly(s.handleCalendar))
	}
	r.HandleFunc(s.basePath+config.RouteICS, readOnly(s.handleICS))

	if s.googleMode() {
		r.HandleFunc(s.basePath+config.RouteLogin, readOnly(s.handleLogin))
		r.HandleFunc(s.basePath+config.RouteLogout, readOnly(s.handleLogout))
		r.HandleFunc(s.basePath+config.RouteAuthorize, readOnly(s.handleAuthorize))
	}
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.listen == "" {
		return errors.New(config.ErrListenEmpty)
	}

	srv := &http.Server{
		Addr:         s.listen,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyListen, s.listen,
			config.LogKeyPath, s.basePath,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}
