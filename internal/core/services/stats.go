package services

import (
	"context"
	"fmt"

	"github.com/INASIC/Chatbot/internal/core/ports/driven"
	"github.com/INASIC/Chatbot/internal/core/ports/driving"
	"github.com/INASIC/Chatbot/internal/logger"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService reports on the pair store and prunes it.
type StatsService struct {
	store driven.PairStore
	runs  driven.RunStore
}

// NewStatsService creates a new stats service.
func NewStatsService(store driven.PairStore, runs driven.RunStore) *StatsService {
	return &StatsService{store: store, runs: runs}
}

// Stats returns pair counts and the most recent ingest run, if any.
func (s *StatsService) Stats(ctx context.Context) (*driving.StoreStats, error) {
	pairs, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("count pairs: %w", err)
	}

	stats := &driving.StoreStats{Pairs: pairs}

	runs, err := s.runs.List(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	if len(runs) > 0 {
		last := runs[0]
		stats.LastRun = &last
	}
	return stats, nil
}

// Prune deletes pairs whose parent body was never resolved. Such rows are
// never exported but can still receive a parent later, so pruning is left
// to the operator.
func (s *StatsService) Prune(ctx context.Context) (int64, error) {
	n, err := s.store.PruneUnpaired(ctx)
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	logger.Info("Pruned %d unpaired rows", n)
	return n, nil
}
