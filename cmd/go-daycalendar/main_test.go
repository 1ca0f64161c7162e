package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-daycalendar/internal/config"
)

func TestNewServer_LocalMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.vcf")
	require.NoError(t, os.WriteFile(path, []byte("BEGIN:VCARD\nVERSION:4.0\nFN:Anna\nBDAY:--0203\nEND:VCARD\n"), config.FilePermUserRW))

	settings := config.Defaults()
	settings.Source = config.Source{Mode: config.SourceModeLocal, LocalPath: path}

	srv, err := newServer(settings)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, settings.BasePath, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Anna (????)")
}

func TestNewServer_GoogleMode(t *testing.T) {
	settings := config.Defaults()
	settings.Google = config.Google{ClientID: "id", ClientSecret: "secret"}

	srv, err := newServer(settings)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, settings.BasePath+config.RouteLogin, nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "accounts.google.com")
}

func TestNewServer_InvalidShowDays(t *testing.T) {
	settings := config.Defaults()
	settings.Source = config.Source{Mode: config.SourceModeLocal, LocalPath: "contacts.vcf"}

	for _, v := range []int{0, -1, 1001} {
		settings.ShowDays = v
		_, err := newServer(settings)
		assert.Error(t, err, "show_days %d", v)
	}
}
