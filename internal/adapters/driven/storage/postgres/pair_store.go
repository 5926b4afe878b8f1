package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// pairStore implements driven.PairStore.
type pairStore struct {
	store *Store
}

var _ driven.PairStore = (*pairStore)(nil)

const pairColumns = `parent_id, reply_id, parent_body, reply_body, subreddit, created_utc, score`

const insertPair = `
INSERT INTO pairs (` + pairColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const replacePair = `
UPDATE pairs SET
  reply_id    = $1,
  parent_body = COALESCE($2, parent_body),
  reply_body  = $3,
  subreddit   = $4,
  created_utc = $5,
  score       = $6
WHERE parent_id = $7`

// ExistingReply returns the stored reply ID and score for a parent.
func (s *pairStore) ExistingReply(ctx context.Context, parentID string) domain.ReplyLookup {
	var replyID string
	var score int64
	err := s.store.pool.QueryRow(ctx,
		`SELECT reply_id, score FROM pairs WHERE parent_id = $1 LIMIT 1`, parentID,
	).Scan(&replyID, &score)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ReplyNotFound()
	case err != nil:
		return domain.ReplyFailed(fmt.Errorf("querying reply for %s: %w", parentID, err))
	default:
		return domain.ReplyFound(replyID, score)
	}
}

// ReplyBody returns the reply body of the row whose reply ID matches.
func (s *pairStore) ReplyBody(ctx context.Context, replyID string) domain.BodyLookup {
	var body string
	err := s.store.pool.QueryRow(ctx,
		`SELECT reply_body FROM pairs WHERE reply_id = $1 LIMIT 1`, replyID,
	).Scan(&body)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.BodyNotFound()
	case err != nil:
		return domain.BodyFailed(fmt.Errorf("querying body of %s: %w", replyID, err))
	default:
		return domain.BodyFound(body)
	}
}

// Apply executes writes in order inside one transaction. Postgres aborts the
// whole transaction on any error, so every write runs under its own
// savepoint and a failing write rolls back to it.
func (s *pairStore) Apply(ctx context.Context, writes []domain.PairWrite) (domain.ApplyResult, error) {
	var res domain.ApplyResult
	if len(writes) == 0 {
		return res, nil
	}

	tx, err := s.store.pool.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, w := range writes {
		if err := applyOne(ctx, tx, w); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Errorf("%s %s: %w", w.Kind, w.Pair.ParentID, err))
			continue
		}
		res.Applied++
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ApplyResult{}, fmt.Errorf("committing transaction: %w", err)
	}
	return res, nil
}

func applyOne(ctx context.Context, tx pgx.Tx, w domain.PairWrite) error {
	p := w.Pair

	var (
		sql  string
		args []any
	)
	switch w.Kind {
	case domain.WriteInsertWithParent:
		sql = insertPair
		args = []any{p.ParentID, p.ReplyID, p.ParentBody, p.ReplyBody, p.Subreddit, p.CreatedUTC, p.Score}
	case domain.WriteInsertWithoutParent:
		sql = insertPair
		args = []any{p.ParentID, p.ReplyID, nil, p.ReplyBody, p.Subreddit, p.CreatedUTC, p.Score}
	case domain.WriteReplace:
		sql = replacePair
		args = []any{p.ReplyID, parentBodyArg(p), p.ReplyBody, p.Subreddit, p.CreatedUTC, p.Score, p.ParentID}
	default:
		return fmt.Errorf("%w: write kind %q", domain.ErrInvalidInput, w.Kind)
	}

	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("creating savepoint: %w", err)
	}
	if _, err := sp.Exec(ctx, sql, args...); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

// Get retrieves a pair by parent ID.
func (s *pairStore) Get(ctx context.Context, parentID string) (*domain.Pair, error) {
	row := s.store.pool.QueryRow(ctx,
		`SELECT `+pairColumns+` FROM pairs WHERE parent_id = $1`, parentID)

	p, err := scanPair(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning pair: %w", err)
	}
	return p, nil
}

// ExportPage returns exportable pairs after cursor in (created_utc, parent_id) order.
func (s *pairStore) ExportPage(ctx context.Context, cursor domain.ExportCursor, limit int) ([]domain.Pair, error) {
	q := `SELECT ` + pairColumns + ` FROM pairs WHERE parent_body IS NOT NULL AND score > 0`
	args := []any{}

	if cursor.Started {
		q += ` AND (created_utc, parent_id) > ($1, $2)`
		args = append(args, cursor.CreatedUTC, cursor.ParentID)
	}
	q += fmt.Sprintf(` ORDER BY created_utc, parent_id LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := s.store.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying export page: %w", err)
	}
	defer rows.Close()

	pairs := make([]domain.Pair, 0, limit)
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning pair: %w", err)
		}
		pairs = append(pairs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pairs: %w", err)
	}
	return pairs, nil
}

// Stats counts stored rows.
func (s *pairStore) Stats(ctx context.Context) (domain.PairStats, error) {
	var st domain.PairStats
	err := s.store.pool.QueryRow(ctx, `
SELECT
  COUNT(*),
  COUNT(parent_body),
  COUNT(*) FILTER (WHERE parent_body IS NOT NULL AND score > 0)
FROM pairs`).Scan(&st.Total, &st.Paired, &st.Exportable)
	if err != nil {
		return st, fmt.Errorf("counting pairs: %w", err)
	}
	return st, nil
}

// PruneUnpaired deletes rows without a parent body.
func (s *pairStore) PruneUnpaired(ctx context.Context) (int64, error) {
	tag, err := s.store.pool.Exec(ctx, `DELETE FROM pairs WHERE parent_body IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("pruning pairs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPair(row pgx.Row) (*domain.Pair, error) {
	var p domain.Pair
	var parentBody *string
	if err := row.Scan(&p.ParentID, &p.ReplyID, &parentBody, &p.ReplyBody,
		&p.Subreddit, &p.CreatedUTC, &p.Score); err != nil {
		return nil, err
	}
	if parentBody != nil {
		p.ParentBody = *parentBody
		p.HasParent = true
	}
	return &p, nil
}

// parentBodyArg returns the parent body for a replace, or nil to keep the
// stored one.
func parentBodyArg(p domain.Pair) any {
	if !p.HasParent {
		return nil
	}
	return p.ParentBody
}
