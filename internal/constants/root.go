package constants

import "time"

// SessionState represents the current view of the TUI application
type SessionState int

const (
	AppName            = "quitsmoke"
	DefaultKeyringUser = "database-connection"
	DefaultDBPath      = "~/.config/quitsmoke/quitsmoke.db"
	DefaultConfigFile  = "~/.config/quitsmoke/config.yaml"
	DefaultUserID      = "local"
	KeyringDB          = "keyring"
	EnvPrefix          = "QUITSMOKE"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is a fixed-width UTC layout so stored timestamps sort lexically
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	// Quit plan defaults, applied when a user opens the tracker for the first time
	DefaultStartLimit = 30
	DefaultDailyStep  = 1
	DefaultMinLimit   = 0
	DefaultProduct    = "cigarettes"

	// Chart windows offered by the progress views
	ShortWindowDays = 14
	LongWindowDays  = 30
	// MaxWindowDays bounds every user supplied window and schedule length
	MaxWindowDays = 3650

	// Notify constants
	NotifyTimeout          = 2 * time.Second
	NotifierLockfileName   = "quitsmoke-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.haikegani.quitsmoke"
	TrayExecutablePrefix   = "quitsmoke-tray"
	TraySecretHeader       = "X-Quitsmoke-Secret"

	// Metrics
	MetricsNamespace = "quitsmoke"
)

// Session States
const (
	StateDashboard SessionState = iota
	StateHistory
	StateEditPlan
)
