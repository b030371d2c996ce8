// Package tracker ties the limit engine to storage: it owns the plan
// lifecycle, records puffs and builds the views shown by the CLI and TUI.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/limit"
	"github.com/haikegani/QuitSmoke/internal/logger"
	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/progress"
	"github.com/haikegani/QuitSmoke/internal/status"
	"github.com/haikegani/QuitSmoke/internal/storage"
	"github.com/haikegani/QuitSmoke/internal/utils"
	"github.com/haikegani/QuitSmoke/internal/validation"
)

// ErrLimitReached is matched by errors.Is when strict mode refuses a puff.
var ErrLimitReached = errors.New("daily limit reached")

// LimitReachedError carries the numbers behind a strict-mode refusal.
type LimitReachedError struct {
	Date  civil.Date
	Count int
	Limit int
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("daily limit reached: %d of %d on %s", e.Count, e.Limit, e.Date)
}

func (e *LimitReachedError) Is(target error) bool {
	return target == ErrLimitReached
}

func (e *LimitReachedError) Hint() string {
	return "strict mode is on; disable it with 'quitsmoke settings --strict-limit=false'"
}

// Notifier delivers a short message to the user.
type Notifier interface {
	Notify(text string) error
}

// Snapshot describes one user's day.
type Snapshot struct {
	Date       civil.Date    `json:"date"`
	Count      int           `json:"count"`
	Limit      int           `json:"limit"`
	Status     models.Status `json:"-"`
	StatusName string        `json:"status"`
	Remaining  int           `json:"remaining"`
	DaysOnPlan int           `json:"days_on_plan"`
}

// Report is an aggregated history with its summary.
type Report struct {
	Records []models.DailyRecord `json:"records"`
	Summary progress.Summary     `json:"summary"`
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifier enables limit notifications.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithIDGenerator replaces the random event id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

type Service struct {
	store    storage.Provider
	now      func() time.Time
	notifier Notifier
	newID    func() string
}

func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the stored settings, falling back to defaults when none
// have been saved yet.
func (s *Service) Settings() (models.Settings, error) {
	settings, err := s.store.GetSettings()
	if errors.Is(err, storage.ErrNotFound) {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// clock returns the current instant and the calendar day it falls on for the
// configured timezone.
func (s *Service) clock(settings models.Settings) (time.Time, civil.Date, *time.Location, error) {
	loc, err := utils.LocationFromSettings(settings)
	if err != nil {
		return time.Time{}, civil.Date{}, nil, err
	}
	now := s.now()
	return now, utils.DayOf(now, loc), loc, nil
}

// CurrentDay returns today's date in the configured timezone.
func (s *Service) CurrentDay() (civil.Date, error) {
	settings, err := s.Settings()
	if err != nil {
		return civil.Date{}, err
	}
	_, today, _, err := s.clock(settings)
	return today, err
}

// Plan returns the user's plan, creating the default plan on first use.
func (s *Service) Plan(userID string) (models.QuitPlan, error) {
	plan, err := s.store.GetPlan(userID)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.QuitPlan{}, fmt.Errorf("failed to load plan: %w", err)
	}

	settings, err := s.Settings()
	if err != nil {
		return models.QuitPlan{}, err
	}
	now, today, _, err := s.clock(settings)
	if err != nil {
		return models.QuitPlan{}, err
	}

	plan = DefaultPlan(userID, today, now)
	if err := s.store.PutPlan(plan); err != nil {
		return models.QuitPlan{}, fmt.Errorf("failed to create default plan: %w", err)
	}
	logger.Info("Created default plan", "user", userID, "start", today)
	return plan, nil
}

// DefaultPlan is the plan a new user starts with.
func DefaultPlan(userID string, start civil.Date, now time.Time) models.QuitPlan {
	return models.QuitPlan{
		UserID:     userID,
		StartLimit: constants.DefaultStartLimit,
		DailyStep:  constants.DefaultDailyStep,
		MinLimit:   constants.DefaultMinLimit,
		StartDate:  start,
		Product:    constants.DefaultProduct,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// UpdatePlan validates and stores plan. Changes apply to every day,
// including days already recorded.
func (s *Service) UpdatePlan(plan models.QuitPlan) error {
	if err := validation.ValidatePlan(plan); err != nil {
		return err
	}
	now := s.now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	if err := s.store.PutPlan(plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	logger.Info("Updated plan", "user", plan.UserID, "start_limit", plan.StartLimit,
		"daily_step", plan.DailyStep, "min_limit", plan.MinLimit, "start", plan.StartDate)
	return nil
}

// Today returns the user's count, ceiling and status for the current day.
func (s *Service) Today(userID string) (Snapshot, error) {
	settings, err := s.Settings()
	if err != nil {
		return Snapshot{}, err
	}
	plan, err := s.Plan(userID)
	if err != nil {
		return Snapshot{}, err
	}
	_, today, loc, err := s.clock(settings)
	if err != nil {
		return Snapshot{}, err
	}
	count, err := s.countOn(userID, today, loc)
	if err != nil {
		return Snapshot{}, err
	}
	return snapshot(plan, today, count), nil
}

// LogPuff records one event at the current time. In strict mode a puff that
// would exceed today's ceiling is refused with a *LimitReachedError.
func (s *Service) LogPuff(userID string) (Snapshot, error) {
	settings, err := s.Settings()
	if err != nil {
		return Snapshot{}, err
	}
	plan, err := s.Plan(userID)
	if err != nil {
		return Snapshot{}, err
	}
	now, today, loc, err := s.clock(settings)
	if err != nil {
		return Snapshot{}, err
	}
	count, err := s.countOn(userID, today, loc)
	if err != nil {
		return Snapshot{}, err
	}

	ceiling := limit.CeilingFor(plan, today)
	if settings.StrictLimit && !status.CanLog(count, ceiling) {
		logger.Info("Refused puff over limit", "user", userID, "count", count, "limit", ceiling)
		return snapshot(plan, today, count), &LimitReachedError{Date: today, Count: count, Limit: ceiling}
	}

	event := models.UsageEvent{
		ID:         s.newID(),
		UserID:     userID,
		OccurredAt: now,
	}
	if err := s.store.AppendEvent(event); err != nil {
		return Snapshot{}, fmt.Errorf("failed to record puff: %w", err)
	}
	count++
	logger.Debug("Recorded puff", "user", userID, "id", event.ID, "count", count, "limit", ceiling)

	if settings.NotifyOnLimit && s.notifier != nil && reachedLimit(count, ceiling) {
		msg := fmt.Sprintf("Daily limit of %d reached. Try to hold off until tomorrow.", ceiling)
		if err := s.notifier.Notify(msg); err != nil {
			logger.Warn("Limit notification failed", "error", err)
		}
	}

	return snapshot(plan, today, count), nil
}

// reachedLimit reports whether the puff that brought the day to count is the
// first one at or over ceiling. On a zero ceiling that is the first puff.
func reachedLimit(count, ceiling int) bool {
	return count >= ceiling && (count-1 < ceiling || count == 1)
}

// Progress aggregates the last window days ending today. A window of zero
// returns every day with events.
func (s *Service) Progress(userID string, window int) (Report, error) {
	if err := ValidateWindow(window); err != nil {
		return Report{}, err
	}
	settings, err := s.Settings()
	if err != nil {
		return Report{}, err
	}
	plan, err := s.Plan(userID)
	if err != nil {
		return Report{}, err
	}
	_, today, loc, err := s.clock(settings)
	if err != nil {
		return Report{}, err
	}

	var since time.Time
	opts := progress.Options{Location: loc}
	if window > 0 {
		since = utils.StartOfDay(today.AddDays(-(window - 1)), loc)
		opts.Window = window
		opts.Through = today
	}

	events, err := s.store.ListEvents(userID, since)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load events: %w", err)
	}

	records := progress.Aggregate(events, plan, opts)
	return Report{Records: records, Summary: progress.Summarize(records)}, nil
}

// ValidateWindow checks a history window length. Zero means all days.
func ValidateWindow(window int) error {
	if window < 0 {
		return fmt.Errorf("window must not be negative (got %d)", window)
	}
	if window > constants.MaxWindowDays {
		return fmt.Errorf("window of %d days exceeds the maximum of %d", window, constants.MaxWindowDays)
	}
	return nil
}

func (s *Service) countOn(userID string, day civil.Date, loc *time.Location) (int, error) {
	events, err := s.store.ListEvents(userID, utils.StartOfDay(day, loc))
	if err != nil {
		return 0, fmt.Errorf("failed to load events: %w", err)
	}
	return progress.CountOn(events, day, loc), nil
}

func snapshot(plan models.QuitPlan, day civil.Date, count int) Snapshot {
	ceiling := limit.CeilingFor(plan, day)
	st := status.For(count, ceiling)
	return Snapshot{
		Date:       day,
		Count:      count,
		Limit:      ceiling,
		Status:     st,
		StatusName: st.String(),
		Remaining:  status.Remaining(count, ceiling),
		DaysOnPlan: limit.DaysElapsed(plan, day),
	}
}
