package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/storage"
)

func (s *Store) GetPlan(userID string) (models.QuitPlan, error) {
	if s.db == nil {
		return models.QuitPlan{}, storage.ErrNotLoaded
	}

	var (
		plan      models.QuitPlan
		startDate time.Time
	)
	err := s.db.QueryRow(`
		SELECT user_id, start_limit, daily_step, min_limit, start_date, product, created_at, updated_at
		FROM quit_plans WHERE user_id = $1`, userID,
	).Scan(&plan.UserID, &plan.StartLimit, &plan.DailyStep, &plan.MinLimit, &startDate, &plan.Product, &plan.CreatedAt, &plan.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QuitPlan{}, fmt.Errorf("plan for %q: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.QuitPlan{}, fmt.Errorf("failed to load plan: %w", err)
	}

	plan.StartDate = civil.DateOf(startDate)
	plan.CreatedAt = plan.CreatedAt.UTC()
	plan.UpdatedAt = plan.UpdatedAt.UTC()
	return plan, nil
}

func (s *Store) PutPlan(plan models.QuitPlan) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	_, err := s.db.Exec(`
		INSERT INTO quit_plans (user_id, start_limit, daily_step, min_limit, start_date, product, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			start_limit = EXCLUDED.start_limit,
			daily_step = EXCLUDED.daily_step,
			min_limit = EXCLUDED.min_limit,
			start_date = EXCLUDED.start_date,
			product = EXCLUDED.product,
			updated_at = EXCLUDED.updated_at`,
		plan.UserID, plan.StartLimit, plan.DailyStep, plan.MinLimit,
		plan.StartDate.String(), plan.Product, plan.CreatedAt.UTC(), plan.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}
