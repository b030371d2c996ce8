package constants

const (
	// Settings keys
	SettingTimezone        = "timezone"
	SettingChartWindowDays = "chart_window_days"
	SettingStrictLimit     = "strict_limit"
	SettingNotifyOnLimit   = "notify_on_limit"

	// Default Settings Values
	DefaultTimezone        = "Local" // Use system local timezone by default
	DefaultChartWindowDays = ShortWindowDays
	DefaultStrictLimit     = true
	DefaultNotifyOnLimit   = true
)
