package postgres

import (
	"fmt"
	"time"

	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/storage"
)

func (s *Store) AppendEvent(event models.UsageEvent) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	_, err := s.db.Exec(
		"INSERT INTO usage_events (id, user_id, occurred_at) VALUES ($1, $2, $3)",
		event.ID, event.UserID, event.OccurredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (s *Store) ListEvents(userID string, since time.Time) ([]models.UsageEvent, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	query := "SELECT id, user_id, occurred_at FROM usage_events WHERE user_id = $1"
	args := []any{userID}
	if !since.IsZero() {
		query += " AND occurred_at >= $2"
		args = append(args, since.UTC())
	}
	query += " ORDER BY occurred_at, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []models.UsageEvent{}
	for rows.Next() {
		var e models.UsageEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.OccurredAt = e.OccurredAt.UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}
