package driven

import (
	"context"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

// RunStore persists ingest run history.
type RunStore interface {
	// Save stores or updates a run.
	Save(ctx context.Context, run domain.IngestRun) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*domain.IngestRun, error)

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.IngestRun, error)
}
