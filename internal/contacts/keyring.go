package contacts

import (
	"log/slog"

	"github.com/tartampluch/go-daycalendar/internal/config"
	"github.com/zalando/go-keyring"
)

// ResolvePassword returns pass when set, otherwise the password stored in the
// OS keyring for user. A missing entry yields "".
func ResolvePassword(user, pass string) string {
	if pass != "" || user == "" {
		return pass
	}
	p, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyUser, user,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompKeyring)
		return ""
	}
	return p
}
