package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Settings is the runtime configuration of the server.
type Settings struct {
	Listen    string  `koanf:"listen"`
	PublicURL string  `koanf:"public_url"`
	BasePath  string  `koanf:"base_path"`
	ShowDays  int     `koanf:"show_days"`
	Source    Source  `koanf:"source"`
	Google    Google  `koanf:"google"`
	Session   Session `koanf:"session"`
}

type Source struct {
	Mode      string `koanf:"mode"`
	LocalPath string `koanf:"local_path"`
	WebURL    string `koanf:"web_url"`
	WebUser   string `koanf:"web_user"`
	WebPass   string `koanf:"web_pass"`
}

type Google struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

type Session struct {
	MaxEntries int           `koanf:"max_entries"`
	TTL        time.Duration `koanf:"ttl"`
}

// Defaults returns the settings used when neither file nor environment
// override a key.
func Defaults() Settings {
	return Settings{
		Listen:    DefaultListen,
		PublicURL: DefaultPublicURL,
		BasePath:  DefaultBasePath,
		ShowDays:  DefaultShowDays,
		Source:    Source{Mode: DefaultSourceMode},
		Session: Session{
			MaxEntries: DefaultSessionSize,
			TTL:        DefaultSessionTTL,
		},
	}
}

// Load layers struct defaults, the optional YAML file at path and DAYCAL_*
// environment variables. A double underscore in a variable name separates
// sections, so DAYCAL_SOURCE__WEB_URL sets source.web_url.
func Load(path string) (Settings, error) {
	log := slog.With(LogKeyComponent, CompConfig)
	k := koanf.New(KeyDelimiter)

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigLoad, err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Settings{}, fmt.Errorf("%s: %w", ErrConfigLoad, err)
			}
			log.Info(MsgConfigMissing, LogKeyPath, path)
		} else {
			log.Info(MsgConfigFile, LogKeyPath, path)
		}
	}

	err := k.Load(env.Provider(KeyDelimiter, env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigLoad, err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigLoad, err)
	}
	s.BasePath = strings.TrimRight(s.BasePath, "/")
	s.PublicURL = strings.TrimRight(s.PublicURL, "/")
	return s, nil
}

func envKey(k, v string) (string, any) {
	k = strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	return strings.ReplaceAll(k, "__", KeyDelimiter), v
}

// Validate reports the first setting that would keep the server from working.
func (s Settings) Validate() error {
	if s.ShowDays < MinShowDays || s.ShowDays > MaxShowDays {
		return fmt.Errorf("%s: got %d", ErrShowDaysRange, s.ShowDays)
	}
	if s.Listen == "" {
		return errors.New(ErrListenEmpty)
	}
	if s.BasePath != "" && !strings.HasPrefix(s.BasePath, "/") {
		return fmt.Errorf("%s: %q", ErrBasePath, s.BasePath)
	}

	switch s.Source.Mode {
	case SourceModeGoogle:
		if s.Google.ClientID == "" || s.Google.ClientSecret == "" {
			return errors.New(ErrGoogleClient)
		}
		u, err := url.Parse(s.PublicURL)
		if err != nil || (u.Scheme != SchemeHTTP && u.Scheme != SchemeHTTPS) || u.Host == "" {
			return fmt.Errorf("%s: public_url %q", ErrInvalidURL, s.PublicURL)
		}
	case SourceModeLocal:
		if s.Source.LocalPath == "" {
			return errors.New(ErrLocalPathEmpty)
		}
	case SourceModeWeb:
		if s.Source.WebURL == "" {
			return errors.New(ErrWebURLEmpty)
		}
	default:
		return fmt.Errorf("%s: %q", ErrModeUnsupport, s.Source.Mode)
	}
	return nil
}

// RedirectURL is the OAuth callback registered with Google.
func (s Settings) RedirectURL() string {
	return s.PublicURL + s.BasePath + RouteAuthorize
}

// SecureCookies reports whether the public URL is served over TLS.
func (s Settings) SecureCookies() bool {
	return strings.HasPrefix(s.PublicURL, SchemeHTTPS+"://")
}
