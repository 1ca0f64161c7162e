package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestAuthenticator(t *testing.T, tokenURL string) *Authenticator {
	t.Helper()
	store, err := NewStore(8, time.Hour, false)
	require.NoError(t, err)

	cfg := NewGoogleConfig("client-id", "client-secret", "http://localhost:8084/verjaardagskalender/authorize")
	cfg.Endpoint = oauth2.Endpoint{
		AuthURL:  "https://accounts.example.com/auth",
		TokenURL: tokenURL,
	}
	return &Authenticator{OAuth: cfg, Sessions: store}
}

func TestNewGoogleConfig_Scopes(t *testing.T) {
	cfg := NewGoogleConfig("id", "secret", "http://localhost/authorize")
	assert.Contains(t, cfg.Scopes, "openid")
	assert.Contains(t, cfg.Scopes, "https://www.googleapis.com/auth/contacts.readonly")
	assert.Equal(t, "http://localhost/authorize", cfg.RedirectURL)
}

func TestAuthenticator_LoginAndCallback(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access","refresh_token":"refresh","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenServer.Close()

	a := newTestAuthenticator(t, tokenServer.URL)

	// 1. Login: a session with a state nonce is created.
	w := httptest.NewRecorder()
	loginURL := a.LoginURL(w, httptest.NewRequest(http.MethodGet, "/verjaardagskalender/login", nil), "/verjaardagskalender")
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	u, err := url.Parse(loginURL)
	require.NoError(t, err)
	state := u.Query().Get("state")
	require.NotEmpty(t, state)
	assert.Equal(t, "offline", u.Query().Get("access_type"))

	// 2. Callback with the matching state.
	cb := httptest.NewRequest(http.MethodGet, "/verjaardagskalender/authorize?code=auth-code&state="+url.QueryEscape(state), nil)
	cb.AddCookie(cookies[0])
	sess, err := a.Callback(context.Background(), cb)
	require.NoError(t, err)

	assert.True(t, sess.Valid())
	assert.Equal(t, "access", sess.Token.AccessToken)
	assert.Equal(t, "/verjaardagskalender", sess.ReturnPath)
	assert.Empty(t, sess.State, "nonce is single use")

	// 3. Replaying the callback fails.
	replay := httptest.NewRequest(http.MethodGet, "/verjaardagskalender/authorize?code=auth-code&state="+url.QueryEscape(state), nil)
	replay.AddCookie(cookies[0])
	_, err = a.Callback(context.Background(), replay)
	assert.ErrorIs(t, err, ErrStateMismatch)
}

func TestAuthenticator_CallbackWithoutSession(t *testing.T) {
	a := newTestAuthenticator(t, "http://127.0.0.1:1/token")
	_, err := a.Callback(context.Background(), httptest.NewRequest(http.MethodGet, "/authorize?code=x&state=y", nil))
	assert.ErrorIs(t, err, ErrStateMismatch)
}

func TestAuthenticator_ExchangeFailure(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer tokenServer.Close()

	a := newTestAuthenticator(t, tokenServer.URL)
	w := httptest.NewRecorder()
	loginURL := a.LoginURL(w, httptest.NewRequest(http.MethodGet, "/login", nil), "/")
	u, err := url.Parse(loginURL)
	require.NoError(t, err)

	cb := httptest.NewRequest(http.MethodGet, "/authorize?code=bad&state="+url.QueryEscape(u.Query().Get("state")), nil)
	cb.AddCookie(w.Result().Cookies()[0])
	_, err = a.Callback(context.Background(), cb)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to exchange code for token")
}
