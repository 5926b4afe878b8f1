package driving

import (
	"context"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

// StoreStats summarises the pair store for operators.
type StoreStats struct {
	Pairs   domain.PairStats
	LastRun *domain.IngestRun
}

// StatsService reports on and maintains the pair store.
type StatsService interface {
	// Stats returns row counts and the most recent ingest run.
	Stats(ctx context.Context) (*StoreStats, error)

	// Prune deletes pairs that never got a parent body.
	Prune(ctx context.Context) (int64, error)
}
