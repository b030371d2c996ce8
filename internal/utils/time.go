package utils

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/haikegani/QuitSmoke/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// LocationFromSettings returns the location configured in settings.
func LocationFromSettings(settings models.Settings) (*time.Location, error) {
	loc, err := LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return loc, nil
}

// DayOf returns the calendar day an instant falls on in the given location.
// A nil location is treated as UTC.
func DayOf(t time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(t.In(loc))
}

// StartOfDay returns midnight of the given day in the given location.
func StartOfDay(day civil.Date, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return day.In(loc)
}

// ParseDate parses a date string (YYYY-MM-DD).
func ParseDate(dateStr string) (civil.Date, error) {
	d, err := civil.ParseDate(dateStr)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return d, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
