package driven

import (
	"context"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

// PairStore persists parent/best-reply pairs.
//
// Lookups never return an error: a failed query is reported through the
// lookup's Status so callers can tell "absent" from "broken".
type PairStore interface {
	// ExistingReply returns the stored reply ID and score for a parent.
	ExistingReply(ctx context.Context, parentID string) domain.ReplyLookup

	// ReplyBody returns the reply body of the row whose reply ID equals
	// replyID. Used to resolve a comment's parent text.
	ReplyBody(ctx context.Context, replyID string) domain.BodyLookup

	// Apply executes writes in order inside one transaction.
	// A failing statement is skipped and recorded in the result; the rest
	// of the batch still commits. A returned error means the transaction
	// itself failed and nothing was committed.
	Apply(ctx context.Context, writes []domain.PairWrite) (domain.ApplyResult, error)

	// Get retrieves a pair by parent ID.
	Get(ctx context.Context, parentID string) (*domain.Pair, error)

	// ExportPage returns up to limit exportable pairs after cursor, in
	// (CreatedUTC, ParentID) order. Exportable means a resolved parent body
	// and a positive score.
	ExportPage(ctx context.Context, cursor domain.ExportCursor, limit int) ([]domain.Pair, error)

	// Stats counts stored rows.
	Stats(ctx context.Context) (domain.PairStats, error)

	// PruneUnpaired deletes rows without a parent body and returns the count.
	PruneUnpaired(ctx context.Context) (int64, error)
}
