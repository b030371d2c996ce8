package models

// Status classifies a day's usage against its ceiling
type Status int

const (
	StatusNoUsage Status = iota
	StatusUnderLimit
	StatusAtOrOverLimit
)

func (s Status) String() string {
	switch s {
	case StatusNoUsage:
		return "no_usage"
	case StatusUnderLimit:
		return "under_limit"
	case StatusAtOrOverLimit:
		return "at_or_over_limit"
	default:
		return "unknown"
	}
}
