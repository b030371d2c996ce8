package storage

import (
	"errors"
	"time"

	"github.com/haikegani/QuitSmoke/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotLoaded is returned when a store is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when no store exists yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'quitsmoke init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Plans
	// GetPlan returns ErrNotFound when the user has no plan.
	GetPlan(userID string) (models.QuitPlan, error)
	// PutPlan creates or replaces the user's plan.
	PutPlan(models.QuitPlan) error

	// Events
	AppendEvent(models.UsageEvent) error
	// ListEvents returns the user's events at or after since, oldest first.
	// A zero since returns every event.
	ListEvents(userID string, since time.Time) ([]models.UsageEvent, error)

	// Utils
	GetConfigPath() string
}
