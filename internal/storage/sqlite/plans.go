package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/storage"
)

func (s *Store) GetPlan(userID string) (models.QuitPlan, error) {
	if s.db == nil {
		return models.QuitPlan{}, storage.ErrNotLoaded
	}

	var (
		plan                            models.QuitPlan
		startDate, createdAt, updatedAt string
	)
	err := s.db.QueryRow(`
		SELECT user_id, start_limit, daily_step, min_limit, start_date, product, created_at, updated_at
		FROM quit_plans WHERE user_id = ?`, userID,
	).Scan(&plan.UserID, &plan.StartLimit, &plan.DailyStep, &plan.MinLimit, &startDate, &plan.Product, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QuitPlan{}, fmt.Errorf("plan for %q: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.QuitPlan{}, fmt.Errorf("failed to load plan: %w", err)
	}

	if plan.StartDate, err = civil.ParseDate(startDate); err != nil {
		return models.QuitPlan{}, fmt.Errorf("plan for %q has invalid start_date %q: %w", userID, startDate, err)
	}
	if plan.CreatedAt, err = time.Parse(constants.TimestampFormat, createdAt); err != nil {
		return models.QuitPlan{}, fmt.Errorf("plan for %q has invalid created_at: %w", userID, err)
	}
	if plan.UpdatedAt, err = time.Parse(constants.TimestampFormat, updatedAt); err != nil {
		return models.QuitPlan{}, fmt.Errorf("plan for %q has invalid updated_at: %w", userID, err)
	}
	return plan, nil
}

func (s *Store) PutPlan(plan models.QuitPlan) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO quit_plans (user_id, start_limit, daily_step, min_limit, start_date, product, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			start_limit = excluded.start_limit,
			daily_step = excluded.daily_step,
			min_limit = excluded.min_limit,
			start_date = excluded.start_date,
			product = excluded.product,
			updated_at = excluded.updated_at`,
		plan.UserID, plan.StartLimit, plan.DailyStep, plan.MinLimit,
		plan.StartDate.String(), plan.Product,
		plan.CreatedAt.UTC().Format(constants.TimestampFormat),
		plan.UpdatedAt.UTC().Format(constants.TimestampFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}
