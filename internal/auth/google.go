package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/tartampluch/go-daycalendar/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/people/v1"
)

// ErrStateMismatch is returned when the callback state does not match the
// nonce stored in the session.
var ErrStateMismatch = errors.New(config.ErrStateMismatch)

// NewGoogleConfig returns the OAuth2 configuration for reading contacts.
func NewGoogleConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes: []string{
			config.ScopeOpenID,
			config.ScopeEmail,
			config.ScopeProfile,
			people.ContactsReadonlyScope,
		},
	}
}

// Authenticator drives the OAuth2 authorization-code flow on top of a Store.
type Authenticator struct {
	OAuth    *oauth2.Config
	Sessions *Store
}

// LoginURL starts a login for the request's session and returns the provider
// URL to redirect to. After the callback the browser returns to returnPath.
func (a *Authenticator) LoginURL(w http.ResponseWriter, r *http.Request, returnPath string) string {
	sess := a.Sessions.GetOrCreate(w, r)
	sess.State = uuid.NewString()
	sess.ReturnPath = returnPath
	a.Sessions.Put(sess)

	slog.Debug(config.MsgLoginRedirect, config.LogKeyComponent, config.CompAuth, config.LogKeyPath, returnPath)
	return a.OAuth.AuthCodeURL(sess.State, oauth2.AccessTypeOffline)
}

// Callback verifies the state nonce, exchanges the code and stores the token
// in the session, which is returned.
func (a *Authenticator) Callback(ctx context.Context, r *http.Request) (Session, error) {
	sess, ok := a.Sessions.Get(r)
	if !ok || sess.State == "" || r.FormValue("state") != sess.State {
		return Session{}, ErrStateMismatch
	}

	token, err := a.OAuth.Exchange(ctx, r.FormValue("code"))
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", config.ErrTokenExchange, err)
	}

	sess.Token = token
	sess.State = ""
	a.Sessions.Put(sess)
	return sess, nil
}

// Client returns an HTTP client authorized with the session's token.
func (a *Authenticator) Client(ctx context.Context, sess Session) *http.Client {
	return a.OAuth.Client(ctx, sess.Token)
}
