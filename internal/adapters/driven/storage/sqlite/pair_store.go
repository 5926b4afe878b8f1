package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// pairStore implements driven.PairStore.
type pairStore struct {
	store *Store
}

var _ driven.PairStore = (*pairStore)(nil)

const pairColumns = `parent_id, reply_id, parent_body, reply_body, subreddit, created_utc, score`

// ExistingReply returns the stored reply ID and score for a parent.
func (s *pairStore) ExistingReply(ctx context.Context, parentID string) domain.ReplyLookup {
	var replyID string
	var score int64
	err := s.store.db.QueryRowContext(ctx,
		`SELECT reply_id, score FROM pairs WHERE parent_id = ? LIMIT 1`, parentID,
	).Scan(&replyID, &score)

	switch {
	case errors.Is(err, sql.ErrNoRows):
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
	err := s.store.db.QueryRowContext(ctx,
		`SELECT reply_body FROM pairs WHERE reply_id = ? LIMIT 1`, replyID,
	).Scan(&body)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.BodyNotFound()
	case err != nil:
		return domain.BodyFailed(fmt.Errorf("querying body of %s: %w", replyID, err))
	default:
		return domain.BodyFound(body)
	}
}

// Apply executes writes in order inside one transaction. SQLite aborts only
// the failing statement on a constraint violation, so the transaction stays
// usable and the remaining writes still commit.
func (s *pairStore) Apply(ctx context.Context, writes []domain.PairWrite) (domain.ApplyResult, error) {
	var res domain.ApplyResult
	if len(writes) == 0 {
		return res, nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO pairs (`+pairColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return res, fmt.Errorf("preparing insert: %w", err)
	}
	defer insert.Close()

	replace, err := tx.PrepareContext(ctx, `
		UPDATE pairs SET
			reply_id = ?,
			parent_body = COALESCE(?, parent_body),
			reply_body = ?,
			subreddit = ?,
			created_utc = ?,
			score = ?
		WHERE parent_id = ?
	`)
	if err != nil {
		return res, fmt.Errorf("preparing replace: %w", err)
	}
	defer replace.Close()

	for _, w := range writes {
		p := w.Pair
		var execErr error
		switch w.Kind {
		case domain.WriteInsertWithParent:
			_, execErr = insert.ExecContext(ctx, p.ParentID, p.ReplyID, p.ParentBody,
				p.ReplyBody, p.Subreddit, p.CreatedUTC, p.Score)
		case domain.WriteInsertWithoutParent:
			_, execErr = insert.ExecContext(ctx, p.ParentID, p.ReplyID, nil,
				p.ReplyBody, p.Subreddit, p.CreatedUTC, p.Score)
		case domain.WriteReplace:
			_, execErr = replace.ExecContext(ctx, p.ReplyID, parentBodyArg(p),
				p.ReplyBody, p.Subreddit, p.CreatedUTC, p.Score, p.ParentID)
		default:
			execErr = fmt.Errorf("%w: write kind %q", domain.ErrInvalidInput, w.Kind)
		}

		if execErr != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Errorf("%s %s: %w", w.Kind, p.ParentID, execErr))
			continue
		}
		res.Applied++
	}

	if err := tx.Commit(); err != nil {
		return domain.ApplyResult{}, fmt.Errorf("committing transaction: %w", err)
	}
	return res, nil
}

// Get retrieves a pair by parent ID.
func (s *pairStore) Get(ctx context.Context, parentID string) (*domain.Pair, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+pairColumns+`
		FROM pairs WHERE parent_id = ?
	`, parentID)

	p, err := scanPair(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning pair: %w", err)
	}
	return p, nil
}

// ExportPage returns exportable pairs after cursor in (created_utc, parent_id) order.
func (s *pairStore) ExportPage(ctx context.Context, cursor domain.ExportCursor, limit int) ([]domain.Pair, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if cursor.Started {
		rows, err = s.store.db.QueryContext(ctx, `
			SELECT `+pairColumns+`
			FROM pairs
			WHERE parent_body IS NOT NULL AND score > 0
			  AND (created_utc, parent_id) > (?, ?)
			ORDER BY created_utc, parent_id
			LIMIT ?
		`, cursor.CreatedUTC, cursor.ParentID, limit)
	} else {
		rows, err = s.store.db.QueryContext(ctx, `
			SELECT `+pairColumns+`
			FROM pairs
			WHERE parent_body IS NOT NULL AND score > 0
			ORDER BY created_utc, parent_id
			LIMIT ?
		`, limit)
	}
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
	err := s.store.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(parent_body),
			COALESCE(SUM(CASE WHEN parent_body IS NOT NULL AND score > 0 THEN 1 ELSE 0 END), 0)
		FROM pairs
	`).Scan(&st.Total, &st.Paired, &st.Exportable)
	if err != nil {
		return st, fmt.Errorf("counting pairs: %w", err)
	}
	return st, nil
}

// PruneUnpaired deletes rows without a parent body.
func (s *pairStore) PruneUnpaired(ctx context.Context) (int64, error) {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM pairs WHERE parent_body IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("pruning pairs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned pairs: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPair(row rowScanner) (*domain.Pair, error) {
	var p domain.Pair
	var parentBody sql.NullString
	if err := row.Scan(&p.ParentID, &p.ReplyID, &parentBody, &p.ReplyBody,
		&p.Subreddit, &p.CreatedUTC, &p.Score); err != nil {
		return nil, err
	}
	p.ParentBody = parentBody.String
	p.HasParent = parentBody.Valid
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
