package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

const runColumns = `id, sources, started_at, finished_at, status, error, counters`

// Save stores or updates a run.
func (s *runStore) Save(ctx context.Context, run domain.IngestRun) error {
	var finishedAt *time.Time
	if !run.FinishedAt.IsZero() {
		finishedAt = &run.FinishedAt
	}
	var errMsg *string
	if run.Error != "" {
		errMsg = &run.Error
	}
	sources := run.Sources
	if sources == nil {
		sources = []string{}
	}

	_, err := s.store.pool.Exec(ctx, `
INSERT INTO ingest_runs (`+runColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
  sources     = EXCLUDED.sources,
  started_at  = EXCLUDED.started_at,
  finished_at = EXCLUDED.finished_at,
  status      = EXCLUDED.status,
  error       = EXCLUDED.error,
  counters    = EXCLUDED.counters`,
		run.ID, sources, run.StartedAt, finishedAt, string(run.Status), errMsg, run.Counters)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.IngestRun, error) {
	row := s.store.pool.QueryRow(ctx,
		`SELECT `+runColumns+` FROM ingest_runs WHERE id = $1`, id)

	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs, newest first. A limit of zero or less
// returns every run.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	q := `SELECT ` + runColumns + ` FROM ingest_runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.store.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.IngestRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func scanRun(row pgx.Row) (*domain.IngestRun, error) {
	var run domain.IngestRun
	var status string
	var finishedAt *time.Time
	var errMsg *string

	if err := row.Scan(&run.ID, &run.Sources, &run.StartedAt, &finishedAt,
		&status, &errMsg, &run.Counters); err != nil {
		return nil, err
	}

	run.Status = domain.RunStatus(status)
	if finishedAt != nil {
		run.FinishedAt = *finishedAt
	}
	if errMsg != nil {
		run.Error = *errMsg
	}
	return &run, nil
}
