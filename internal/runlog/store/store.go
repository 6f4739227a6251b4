package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/payflow/internal/runlog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateEntry stores e. A repeated key overwrites the earlier entry, so the
// last run recorded within the same second wins.
func (s *Store) CreateEntry(ctx context.Context, e *runlog.Entry) error {
	query := `
		INSERT INTO run_logs (id, log_key, client_id, client_name, period, execution_time, status, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (log_key) DO UPDATE SET
			client_id = EXCLUDED.client_id,
			client_name = EXCLUDED.client_name,
			period = EXCLUDED.period,
			execution_time = EXCLUDED.execution_time,
			status = EXCLUDED.status,
			message = EXCLUDED.message
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		e.ID,
		e.Key,
		e.ClientID,
		e.ClientName,
		e.Period,
		e.ExecutedAt,
		e.Status,
		e.Message,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("creating run log: %w", err)
	}

	return nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]*runlog.Entry, error) {
	query := `
		SELECT id, log_key, client_id, client_name, period, execution_time, status, message
		FROM run_logs
		ORDER BY execution_time DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing run logs: %w", err)
	}
	defer rows.Close()

	var entries []*runlog.Entry

	for rows.Next() {
		var e runlog.Entry
		if err := rows.Scan(
			&e.ID, &e.Key, &e.ClientID, &e.ClientName, &e.Period, &e.ExecutedAt, &e.Status, &e.Message,
		); err != nil {
			return nil, fmt.Errorf("scanning run log: %w", err)
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run log rows: %w", err)
	}

	return entries, nil
}
