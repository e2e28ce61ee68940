package database

import (
	"context"
	"fmt"
	"time"

	"outreach/internal/models"

	"github.com/jmoiron/sqlx"
)

// ActivityStore persists outreach activity events
type ActivityStore struct {
	db *sqlx.DB
}

// NewActivityStore wraps an open database
func NewActivityStore(db *sqlx.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) schema() []string {
	id := "id SERIAL PRIMARY KEY"
	if s.db.DriverName() == DriverMySQL {
		id = "id INT AUTO_INCREMENT PRIMARY KEY"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS activity_events (
			` + id + `,
			event_type VARCHAR(50) NOT NULL,
			count INT NOT NULL DEFAULT 1,
			metadata TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX idx_activity_events_created_at ON activity_events(created_at)`,
	}
}

// CreateTables creates the activity table. An existing index is not an error.
func (s *ActivityStore) CreateTables(ctx context.Context) error {
	statements := s.schema()
	if _, err := s.db.ExecContext(ctx, statements[0]); err != nil {
		return fmt.Errorf("failed to create activity_events: %w", err)
	}
	for _, stmt := range statements[1:] {
		_, _ = s.db.ExecContext(ctx, stmt)
	}
	return nil
}

// Insert records one event
func (s *ActivityStore) Insert(ctx context.Context, event models.ActivityEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	query := s.db.Rebind(`INSERT INTO activity_events (event_type, count, metadata, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, event.EventType, event.Count, event.Metadata, event.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert activity event: %w", err)
	}
	return nil
}

// Totals sums event counts by type for [from, to)
func (s *ActivityStore) Totals(ctx context.Context, from, to time.Time) (map[string]int, error) {
	var rows []struct {
		EventType string `db:"event_type"`
		Total     int    `db:"total"`
	}
	query := s.db.Rebind(`
		SELECT event_type, COALESCE(SUM(count), 0) AS total
		FROM activity_events
		WHERE created_at >= ? AND created_at < ?
		GROUP BY event_type`)
	if err := s.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to load activity totals: %w", err)
	}

	totals := make(map[string]int, len(rows))
	for _, r := range rows {
		totals[r.EventType] = r.Total
	}
	return totals, nil
}

// Recent returns the newest events first
func (s *ActivityStore) Recent(ctx context.Context, limit int) ([]models.ActivityEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []models.ActivityEvent
	query := s.db.Rebind(`
		SELECT id, event_type, count, metadata, created_at
		FROM activity_events
		ORDER BY created_at DESC
		LIMIT ?`)
	if err := s.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}
	return events, nil
}
