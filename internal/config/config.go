package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-DayCalendar/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go DayCalendar"
	AppID          = "com.github.tartampluch.go-daycalendar"
	KeyringService = "com.github.tartampluch.go-daycalendar"
	LogFileName    = "app.log"
	EnvPrefix      = "DAYCAL_"
	KeyDelimiter   = "."
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to the YAML configuration file"
	DefaultConfig    = "daycalendar.yaml"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Calendar Rules
// -----------------------------------------------------------------------------

const (
	// MilestoneInterval is the day count whose multiples are celebrated.
	MilestoneInterval = 1000

	// DefaultShowDays is how many days ahead a milestone becomes visible.
	DefaultShowDays = 366
	MinShowDays     = 1
	MaxShowDays     = MilestoneInterval

	MonthsPerYear = 12
	MaxMonthDays  = 31

	FallbackName      = "No Name"
	FallbackEventType = "?"
	UnknownYear       = "(????)"

	FormatYear      = "(%04d)"
	FormatMilestone = "%d dagen"
	FormatEventName = "%s (%s)"

	DefaultLeapYear = 2000 // Leap year fallback for dates like --02-29
	HoursPerDay     = 24
)

// -----------------------------------------------------------------------------
// Contact Sources
// -----------------------------------------------------------------------------

const (
	SourceModeGoogle = "google"
	SourceModeLocal  = "local"
	SourceModeWeb    = "web"

	// People API
	PeopleResource     = "people/me"
	PeopleFields       = "names,birthdays,events"
	PeopleFieldsMe     = "names,emailAddresses"
	PeoplePageSize     = 1000
	PeopleMaxPages     = 100
	ScopeOpenID        = "openid"
	ScopeEmail         = "email"
	ScopeProfile       = "profile"
	VCardEventTypeAnnv = "anniversary"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultListen       = "127.0.0.1:8084"
	DefaultPublicURL    = "http://localhost:8084"
	DefaultBasePath     = "/verjaardagskalender"
	DefaultSessionSize  = 1024
	DefaultSessionTTL   = 12 * time.Hour
	DefaultSourceMode   = SourceModeGoogle
	DefaultSortLanguage = "nl"
	MetricsNamespace    = "daycalendar"
	MetricLabelSource   = "source"
	MetricLabelKind     = "kind"
	MetricKindAnniv     = "anniversary"
	MetricKindMilestone = "milestone"
	SessionCookieName   = "daycal_session"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go DayCalendar//Engine//EN"
	ICalCalName = "Verjaardagskalender"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "godaycalendar"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// FormatSummary joins a calendar label and its display text.
	FormatSummary = "%s %s"

	VCardBDAY        = "BDAY"
	VCardAnniversary = "ANNIVERSARY"
	VCardFN          = "FN"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard date fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%02d-%02d|%s"
	FormatUID       = "%s-%d@%s"
	UIDSalt         = "go-daycalendar-v1-"
)

// -----------------------------------------------------------------------------
// HTML Rendering
// -----------------------------------------------------------------------------

const (
	TemplatePattern  = "templates/*.html"
	TemplateIndex    = "index.html"
	TemplateCalendar = "kalender.html"
	PageTitle        = "Verjaardagskalender"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteHealth         = "/healthz"
	RouteMetrics        = "/metrics"
	RouteLogin          = "/login"
	RouteLogout         = "/logout"
	RouteAuthorize      = "/authorize"
	RouteICS            = "/kalender.ics"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderAccept       = "Accept"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextHTML        = "text/html; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeVCard           = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrShowDaysRange   = "configuration error: show_days must be between 1 and 1000"
	ErrGoogleClient    = "configuration error: google client id and secret are required"
	ErrListenEmpty     = "configuration error: listen address is empty"
	ErrBasePath        = "configuration error: base path must start with '/'"
	ErrConfigLoad      = "failed to load configuration"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrDateRange       = "date out of range"
	ErrBuild           = "calendar build failed"
	ErrPeopleService   = "unable to create People service"
	ErrPeopleList      = "unable to list connections"
	ErrPeopleMe        = "unable to read signed-in profile"
	ErrTemplate        = "failed to render template"
	ErrTokenExchange   = "unable to exchange code for token"
	ErrStateMismatch   = "oauth state mismatch"
	ErrSessionStore    = "unable to create session store"
	ErrMetricsRegister = "unable to register metrics"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrContactsFetch   = "failed to fetch contacts"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgBadGateway   = "Contacts could not be retrieved"
	HTTPMsgBadRequest   = "Bad Request"
	HTTPMsgOK           = "ok"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgSyncStarted   = "Fetching contacts..."
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgBuildSuccess  = "Calendar build successful"
	MsgICSEncoded    = "Calendar feed encoded"
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgConfigFile    = "Loaded configuration from file"
	MsgConfigMissing = "Config file not found, using defaults and environment variables"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgPageFetched   = "Connections page fetched"
	MsgLoginRedirect = "Redirecting to Google authorization"
	MsgLoggedIn      = "User signed in"
	MsgLoggedOut     = "User signed out"
	MsgTokenInvalid  = "Session token missing or expired"
	MsgAuthFailed    = "Authorization callback rejected"
	MsgMeFailed      = "Could not read signed-in user profile"
	MsgRequestFailed = "Calendar request failed"
	MsgSourceReady   = "Contact source configured"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyListen    = "listen"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyRecords   = "records"
	LogKeyAnnivs    = "anniversaries"
	LogKeyMilest    = "milestones"
	LogKeySizeBytes = "size_bytes"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyPage      = "page"
	LogKeyPath      = "path"
	LogKeyDuration  = "duration_ms"
	LogKeyShowDays  = "show_days"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompVCard   = "vcard"
	CompPeople  = "people"
	CompAuth    = "auth"
	CompRender  = "render"
	CompConfig  = "config"
	CompMain    = "main"
	CompKeyring = "keyring"
)
