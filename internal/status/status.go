// Package status classifies a day's count against its ceiling.
package status

import "github.com/haikegani/QuitSmoke/internal/models"

// For returns the status of count against limit. The rules are checked in
// order: no usage, then under limit, otherwise at or over.
func For(count, limit int) models.Status {
	switch {
	case count == 0:
		return models.StatusNoUsage
	case count < limit:
		return models.StatusUnderLimit
	default:
		return models.StatusAtOrOverLimit
	}
}

// CanLog reports whether one more event fits under limit.
func CanLog(count, limit int) bool {
	return count < limit
}

// Remaining returns how many events are left before limit is reached.
func Remaining(count, limit int) int {
	if count >= limit {
		return 0
	}
	return limit - count
}

// Message returns the user facing line for s.
func Message(s models.Status) string {
	switch s {
	case models.StatusNoUsage:
		return "No puffs yet today. Great start!"
	case models.StatusUnderLimit:
		return "You're under your limit. Keep it up."
	case models.StatusAtOrOverLimit:
		return "Daily limit reached. Try to hold off until tomorrow."
	default:
		return ""
	}
}
