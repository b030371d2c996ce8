package models

import (
	"time"

	"cloud.google.com/go/civil"
)

// QuitPlan describes a linearly declining daily ceiling.
// The ceiling starts at StartLimit on StartDate, drops by DailyStep for every
// elapsed day and never goes below MinLimit.
type QuitPlan struct {
	UserID     string     `json:"user_id" validate:"required"`
	StartLimit int        `json:"start_limit" validate:"gte=1"`
	DailyStep  int        `json:"daily_step" validate:"gte=0"`
	MinLimit   int        `json:"min_limit" validate:"gte=0,ltefield=StartLimit"`
	StartDate  civil.Date `json:"start_date"`
	Product    string     `json:"product,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UsageEvent is a single logged puff. Events are append-only.
type UsageEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DailyRecord pairs the number of events on a day with that day's ceiling.
// It is always derived, never stored.
type DailyRecord struct {
	Date  civil.Date `json:"date"`
	Count int        `json:"count"`
	Limit int        `json:"limit"`
}
