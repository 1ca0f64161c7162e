// Package auth holds the Google OAuth2 login flow and the in-memory session
// store that keeps each browser's access token.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tartampluch/go-daycalendar/internal/config"
	"golang.org/x/oauth2"
)

// Session is the per-browser login state.
type Session struct {
	ID         string
	User       string
	Token      *oauth2.Token
	State      string // OAuth state nonce while a login is in flight
	ReturnPath string
}

// Valid reports whether the session carries an unexpired access token.
func (s Session) Valid() bool {
	return s.Token != nil && s.Token.Valid()
}

type storedSession struct {
	session  Session
	lastSeen time.Time
}

// Store keeps sessions in a size-bounded LRU. Entries idle for longer than
// ttl are treated as absent. Sessions are stored and returned by value.
type Store struct {
	cache  *lru.Cache[string, storedSession]
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewStore creates a Store holding at most size sessions. secure marks the
// session cookie as HTTPS-only.
func NewStore(size int, ttl time.Duration, secure bool) (*Store, error) {
	cache, err := lru.New[string, storedSession](size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrSessionStore, err)
	}
	return &Store{cache: cache, ttl: ttl, secure: secure, now: time.Now}, nil
}

// Get returns the session referenced by the request cookie.
func (s *Store) Get(r *http.Request) (Session, bool) {
	c, err := r.Cookie(config.SessionCookieName)
	if err != nil || c.Value == "" {
		return Session{}, false
	}
	stored, ok := s.cache.Get(c.Value)
	if !ok {
		return Session{}, false
	}
	if s.ttl > 0 && s.now().Sub(stored.lastSeen) > s.ttl {
		s.cache.Remove(c.Value)
		return Session{}, false
	}
	stored.lastSeen = s.now()
	s.cache.Add(c.Value, stored)
	return stored.session, true
}

// GetOrCreate returns the request's session, starting a new one (and setting
// its cookie on w) when there is none.
func (s *Store) GetOrCreate(w http.ResponseWriter, r *http.Request) Session {
	if sess, ok := s.Get(r); ok {
		return sess
	}
	sess := Session{ID: uuid.NewString()}
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.Put(sess)
	return sess
}

// Put stores sess under its ID.
func (s *Store) Put(sess Session) {
	s.cache.Add(sess.ID, storedSession{session: sess, lastSeen: s.now()})
}

// Delete forgets the request's session and expires its cookie.
func (s *Store) Delete(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(config.SessionCookieName); err == nil {
		s.cache.Remove(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     config.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}
