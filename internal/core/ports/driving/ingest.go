package driving

import (
	"context"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

// IngestOptions controls one ingest run.
type IngestOptions struct {
	// Skip is the number of leading records to read without processing.
	// Used to resume an interrupted run.
	Skip int64

	// Progress, if set, is called every ProgressEvery records.
	Progress func(domain.IngestProgress)
}

// Ingester folds comment dumps into the pair store.
type Ingester interface {
	// Ingest processes each path in order and returns the finished run.
	// The run is returned even when err is non-nil.
	Ingest(ctx context.Context, paths []string, opts IngestOptions) (*domain.IngestRun, error)

	// Runs lists recent ingest runs, newest first.
	Runs(ctx context.Context, limit int) ([]domain.IngestRun, error)
}
