package sqlite

import (
	"fmt"
	"time"

	"github.com/haikegani/QuitSmoke/internal/constants"
	"github.com/haikegani/QuitSmoke/internal/models"
	"github.com/haikegani/QuitSmoke/internal/storage"
)

func (s *Store) AppendEvent(event models.UsageEvent) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	_, err := s.db.Exec(
		"INSERT INTO usage_events (id, user_id, occurred_at) VALUES (?, ?, ?)",
		event.ID, event.UserID, event.OccurredAt.UTC().Format(constants.TimestampFormat),
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

	query := "SELECT id, user_id, occurred_at FROM usage_events WHERE user_id = ?"
	args := []any{userID}
	if !since.IsZero() {
		query += " AND occurred_at >= ?"
		args = append(args, since.UTC().Format(constants.TimestampFormat))
	}
	query += " ORDER BY occurred_at, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []models.UsageEvent{}
	for rows.Next() {
		var (
			e          models.UsageEvent
			occurredAt string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &occurredAt); err != nil {
			return nil, err
		}
		if e.OccurredAt, err = time.Parse(constants.TimestampFormat, occurredAt); err != nil {
			return nil, fmt.Errorf("event %s has invalid occurred_at %q: %w", e.ID, occurredAt, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
