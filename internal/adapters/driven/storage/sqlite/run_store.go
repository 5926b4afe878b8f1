package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Save stores or updates a run.
func (s *runStore) Save(ctx context.Context, run domain.IngestRun) error {
	sourcesJSON, err := json.Marshal(run.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}
	countersJSON, err := json.Marshal(run.Counters)
	if err != nil {
		return fmt.Errorf("marshalling counters: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, sources, started_at, finished_at, status, error, counters)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sources = excluded.sources,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			status = excluded.status,
			error = excluded.error,
			counters = excluded.counters
	`, run.ID, string(sourcesJSON), formatTime(run.StartedAt), formatNullableTime(run.FinishedAt),
		string(run.Status), nullString(run.Error), string(countersJSON))

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.IngestRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, sources, started_at, finished_at, status, error, counters
		FROM ingest_runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs, newest first. A limit of zero or less
// returns every run.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, sources, started_at, finished_at, status, error, counters
		FROM ingest_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.IngestRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

func scanRun(row rowScanner) (*domain.IngestRun, error) {
	var run domain.IngestRun
	var sourcesJSON, startedAt, status, countersJSON string
	var finishedAt, errMsg sql.NullString

	if err := row.Scan(&run.ID, &sourcesJSON, &startedAt, &finishedAt,
		&status, &errMsg, &countersJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	if err := json.Unmarshal([]byte(sourcesJSON), &run.Sources); err != nil {
		return nil, fmt.Errorf("unmarshalling sources: %w", err)
	}
	if err := json.Unmarshal([]byte(countersJSON), &run.Counters); err != nil {
		return nil, fmt.Errorf("unmarshalling counters: %w", err)
	}

	run.StartedAt = parseNullableTime(sql.NullString{String: startedAt, Valid: true})
	run.FinishedAt = parseNullableTime(finishedAt)
	run.Status = domain.RunStatus(status)
	run.Error = errMsg.String
	return &run, nil
}

// formatTime formats t in UTC using timeLayout.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// formatNullableTime formats a time, or returns nil for zero time.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

// parseNullableTime parses a nullable timestamp.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
