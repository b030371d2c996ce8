package models

// Settings represents application-wide settings
type Settings struct {
	Timezone        string `json:"timezone"`          // IANA timezone name (e.g. "Europe/Moscow", or "Local" for system timezone)
	ChartWindowDays int    `json:"chart_window_days"` // number of days shown by default in progress views
	StrictLimit     bool   `json:"strict_limit"`      // refuse to log once today's ceiling is reached
	NotifyOnLimit   bool   `json:"notify_on_limit"`   // send a tray notification when the ceiling is reached
}
