package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-daycalendar/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daycalendar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))
	return path
}

func validGoogle() config.Settings {
	s := config.Defaults()
	s.Google = config.Google{ClientID: "id", ClientSecret: "secret"}
	return s
}

func TestLoad_Defaults(t *testing.T) {
	s, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultListen, s.Listen)
	assert.Equal(t, config.DefaultBasePath, s.BasePath)
	assert.Equal(t, 366, s.ShowDays)
	assert.Equal(t, config.SourceModeGoogle, s.Source.Mode)
	assert.Equal(t, config.DefaultSessionTTL, s.Session.TTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
listen: ":9000"
public_url: "https://cal.example.com/"
base_path: "/kalender/"
show_days: 100
source:
  mode: web
  web_url: "https://dav.example.com/contacts.vcf"
  web_user: alice
session:
  ttl: 30m
`)
	t.Setenv("DAYCAL_SHOW_DAYS", "200")
	t.Setenv("DAYCAL_SOURCE__WEB_USER", "bob")

	s, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", s.Listen)
	assert.Equal(t, "https://cal.example.com", s.PublicURL, "trailing slash trimmed")
	assert.Equal(t, "/kalender", s.BasePath)
	assert.Equal(t, 200, s.ShowDays, "environment wins over file")
	assert.Equal(t, config.SourceModeWeb, s.Source.Mode)
	assert.Equal(t, "https://dav.example.com/contacts.vcf", s.Source.WebURL)
	assert.Equal(t, "bob", s.Source.WebUser)
	assert.Equal(t, 30*time.Minute, s.Session.TTL)
	assert.Equal(t, config.DefaultSessionSize, s.Session.MaxEntries, "untouched default survives")

	assert.Equal(t, "https://cal.example.com/kalender/authorize", s.RedirectURL())
	assert.True(t, s.SecureCookies())
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "listen: [unterminated")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrConfigLoad)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Settings)
		wantErr string
	}{
		{"valid google", func(*config.Settings) {}, ""},
		{"show_days zero", func(s *config.Settings) { s.ShowDays = 0 }, config.ErrShowDaysRange},
		{"show_days too large", func(s *config.Settings) { s.ShowDays = 1001 }, config.ErrShowDaysRange},
		{"show_days lower bound", func(s *config.Settings) { s.ShowDays = 1 }, ""},
		{"show_days upper bound", func(s *config.Settings) { s.ShowDays = 1000 }, ""},
		{"empty listen", func(s *config.Settings) { s.Listen = "" }, config.ErrListenEmpty},
		{"relative base path", func(s *config.Settings) { s.BasePath = "kalender" }, config.ErrBasePath},
		{"root base path", func(s *config.Settings) { s.BasePath = "" }, ""},
		{"google without client", func(s *config.Settings) { s.Google = config.Google{} }, config.ErrGoogleClient},
		{"google bad public url", func(s *config.Settings) { s.PublicURL = "ftp://x" }, config.ErrInvalidURL},
		{"local without path", func(s *config.Settings) { s.Source.Mode = config.SourceModeLocal }, config.ErrLocalPathEmpty},
		{"local ok", func(s *config.Settings) {
			s.Source = config.Source{Mode: config.SourceModeLocal, LocalPath: "contacts.vcf"}
		}, ""},
		{"web without url", func(s *config.Settings) { s.Source.Mode = config.SourceModeWeb }, config.ErrWebURLEmpty},
		{"unknown mode", func(s *config.Settings) { s.Source.Mode = "ldap" }, config.ErrModeUnsupport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validGoogle()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
