package models

import (
	"fmt"
	"strconv"

	"github.com/haikegani/QuitSmoke/internal/constants"
)

// DefaultSettings returns the settings a freshly initialized store starts with.
func DefaultSettings() Settings {
	return Settings{
		Timezone:        constants.DefaultTimezone,
		ChartWindowDays: constants.DefaultChartWindowDays,
		StrictLimit:     constants.DefaultStrictLimit,
		NotifyOnLimit:   constants.DefaultNotifyOnLimit,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys missing from the map keep their default values.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingChartWindowDays:
			days, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.ChartWindowDays = days
		case constants.SettingStrictLimit:
			settings.StrictLimit = value == "true"
		case constants.SettingNotifyOnLimit:
			settings.NotifyOnLimit = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:        settings.Timezone,
		constants.SettingChartWindowDays: strconv.Itoa(settings.ChartWindowDays),
		constants.SettingStrictLimit:     strconv.FormatBool(settings.StrictLimit),
		constants.SettingNotifyOnLimit:   strconv.FormatBool(settings.NotifyOnLimit),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.ChartWindowDays <= 0 {
		settings.ChartWindowDays = constants.DefaultChartWindowDays
	}
}
