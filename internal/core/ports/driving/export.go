package driving

import (
	"context"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// ExportOptions controls one export run.
type ExportOptions struct {
	// PageSize overrides export.page_size when positive.
	PageSize int

	// Progress, if set, is called every ProgressPages pages.
	Progress func(domain.ExportProgress)
}

// Exporter writes stored pairs out as a parallel text corpus.
type Exporter interface {
	Export(ctx context.Context, w driven.CorpusWriter, opts ExportOptions) (*domain.ExportReport, error)
}
