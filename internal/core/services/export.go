package services

import (
	"context"
	"fmt"
	"time"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
	"github.com/INASIC/Chatbot/internal/core/ports/driving"
	"github.com/INASIC/Chatbot/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.Exporter = (*ExportService)(nil)

// ExportService pages exportable pairs out of the store into a corpus.
//
// Pairs are read in (CreatedUTC, ParentID) order. The first page becomes
// the held-out test split and every later page goes to the training split.
// Export expects the store not to change while it runs; the keyset cursor
// is not a snapshot.
type ExportService struct {
	store    driven.PairStore
	settings domain.ExportSettings
	now      func() time.Time
}

// NewExportService creates a new export service.
func NewExportService(store driven.PairStore, settings domain.ExportSettings) *ExportService {
	return &ExportService{
		store:    store,
		settings: settings,
		now:      time.Now,
	}
}

// Export writes every exportable pair to w. A write failure aborts the
// export; pages already written stay in the files.
func (s *ExportService) Export(ctx context.Context, w driven.CorpusWriter, opts driving.ExportOptions) (*domain.ExportReport, error) {
	pageSize := s.settings.PageSize
	if opts.PageSize > 0 {
		pageSize = opts.PageSize
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive", domain.ErrInvalidInput)
	}
	progressPages := s.settings.ProgressPages
	if progressPages <= 0 {
		progressPages = 1
	}

	logger.Section("Export")
	logger.Info("Exporting to %s in pages of %d", w.Dir(), pageSize)

	report := &domain.ExportReport{Dir: w.Dir()}
	var cursor domain.ExportCursor

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		page, err := s.store.ExportPage(ctx, cursor, pageSize)
		if err != nil {
			return report, fmt.Errorf("read page %d: %w", report.Pages+1, err)
		}

		if len(page) > 0 {
			split := domain.SplitTrain
			if report.Pages == 0 {
				split = domain.SplitTest
			}
			if err := w.WritePage(split, page); err != nil {
				return report, fmt.Errorf("write page %d: %w", report.Pages+1, err)
			}

			report.Pages++
			if split == domain.SplitTest {
				report.TestRows += int64(len(page))
			} else {
				report.TrainRows += int64(len(page))
			}
			cursor = cursor.After(page[len(page)-1])
			logger.Debug("page %d: %d pairs to %s", report.Pages, len(page), split)

			if report.Pages%progressPages == 0 && opts.Progress != nil {
				opts.Progress(domain.ExportProgress{
					Pages:     report.Pages,
					TestRows:  report.TestRows,
					TrainRows: report.TrainRows,
					Cursor:    cursor,
					At:        s.now(),
				})
			}
		}

		if len(page) < pageSize {
			break
		}
	}

	logger.Info("Exported %d pairs (%d test, %d train) in %d pages",
		report.Rows(), report.TestRows, report.TrainRows, report.Pages)
	return report, nil
}
