package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
	"github.com/INASIC/Chatbot/internal/core/ports/driving"
	"github.com/INASIC/Chatbot/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingester = (*IngestService)(nil)

// IngestService folds comment dumps into the pair store.
type IngestService struct {
	store      driven.PairStore
	runs       driven.RunStore
	opener     driven.CommentSourceOpener
	normaliser driven.Normaliser
	filter     driven.BodyFilter
	settings   domain.IngestSettings
	now        func() time.Time
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	store driven.PairStore,
	runs driven.RunStore,
	opener driven.CommentSourceOpener,
	normaliser driven.Normaliser,
	filter driven.BodyFilter,
	settings domain.IngestSettings,
) *IngestService {
	return &IngestService{
		store:      store,
		runs:       runs,
		opener:     opener,
		normaliser: normaliser,
		filter:     filter,
		settings:   settings,
		now:        time.Now,
	}
}

// Ingest processes each path in order within a single run. Buffered writes
// are flushed when the last path is exhausted, and also when the run stops
// early because of an error or cancellation.
func (s *IngestService) Ingest(ctx context.Context, paths []string, opts driving.IngestOptions) (*domain.IngestRun, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no dump paths given", domain.ErrInvalidInput)
	}

	sess := s.newSession(paths, opts)
	if err := s.runs.Save(ctx, *sess.run); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}

	logger.Section("Ingest")
	logger.Info("Starting ingest run %s over %d dump(s)", sess.run.ID, len(paths))

	var runErr error
	for _, path := range paths {
		if runErr = sess.ingestPath(ctx, s.opener, path); runErr != nil {
			break
		}
	}

	// The tail of the buffer never reaches the threshold on its own.
	// Use a fresh context so a cancelled run still commits what it has.
	if err := sess.flush(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		runErr = err
	}

	return sess.finish(ctx, s.runs, runErr)
}

// Runs lists recent ingest runs, newest first.
func (s *IngestService) Runs(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	runs, err := s.runs.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func (s *IngestService) newSession(paths []string, opts driving.IngestOptions) *ingestSession {
	return &ingestSession{
		run: &domain.IngestRun{
			ID:        uuid.New().String(),
			Sources:   append([]string(nil), paths...),
			StartedAt: s.now(),
			Status:    domain.RunStatusRunning,
		},
		buffer:     NewWriteBuffer(s.store, s.settings.BatchSize),
		selector:   NewSelector(s.settings.MinScore, s.filter),
		normaliser: s.normaliser,
		settings:   s.settings,
		opts:       opts,
		now:        s.now,
	}
}

// ingestSession holds the mutable state of one ingest run: the pending
// write buffer and the counters.
type ingestSession struct {
	run        *domain.IngestRun
	buffer     *WriteBuffer
	selector   *Selector
	normaliser driven.Normaliser
	settings   domain.IngestSettings
	opts       driving.IngestOptions
	now        func() time.Time
	source     string
}

func (s *ingestSession) ingestPath(ctx context.Context, opener driven.CommentSourceOpener, path string) error {
	src, err := opener.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	s.source = src.Name()
	logger.Info("Reading %s", s.source)
	return s.drive(ctx, src)
}

// drive streams src to exhaustion.
func (s *ingestSession) drive(ctx context.Context, src driven.CommentSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}

		switch {
		case err == nil:
			s.run.Counters.Read++
			if s.run.Counters.Read <= s.opts.Skip {
				s.run.Counters.Skipped++
			} else if perr := s.process(ctx, c); perr != nil {
				return perr
			}
		case domain.IsSkippable(err):
			s.run.Counters.Read++
			s.run.Counters.Skipped++
			logger.Debug("skipping record %d in %s: %v", s.run.Counters.Read, s.source, err)
		default:
			return fmt.Errorf("read %s: %w", s.source, err)
		}

		if s.settings.ProgressEvery > 0 && s.run.Counters.Read%s.settings.ProgressEvery == 0 {
			s.reportProgress()
		}
	}
}

// process runs one comment through normalisation, lookup and selection.
func (s *ingestSession) process(ctx context.Context, c domain.Comment) error {
	c.Body = s.normaliser.Normalise(c.Body)

	if d, reason := s.selector.Screen(c); d != "" {
		s.run.Counters.Rejected++
		logger.Debug("rejected %s: %v", c.ReplyID, reason)
		return nil
	}

	parent := s.buffer.ReplyBody(ctx, c.ParentID)
	if parent.Status == domain.LookupFailed {
		if err := s.lookupFailed("parent body", c.ParentID, parent.Err); err != nil {
			return err
		}
	}

	existing := s.buffer.ExistingReply(ctx, c.ParentID)
	if existing.Status == domain.LookupFailed {
		if err := s.lookupFailed("existing reply", c.ParentID, existing.Err); err != nil {
			return err
		}
	}

	sel := s.selector.Decide(domain.Candidate{
		Comment:    c,
		ParentBody: parent.Body,
		HasParent:  parent.Found(),
	}, existing)

	switch sel.Decision {
	case DecisionDiscarded:
		s.run.Counters.Discarded++
	case DecisionReplace:
		s.run.Counters.Replaced++
	case DecisionInsertWithParent:
		s.run.Counters.Inserted++
		s.run.Counters.Paired++
	case DecisionInsertWithoutParent:
		s.run.Counters.Inserted++
	}

	if sel.Write == nil {
		return nil
	}
	s.buffer.Enqueue(*sel.Write)

	res, flushed, err := s.buffer.FlushIfFull(ctx)
	if flushed {
		s.recordFlush(res, err)
	}
	return nil
}

// lookupFailed applies the lookup failure policy. Under the open policy the
// failure is counted and the lookup is treated as finding nothing.
func (s *ingestSession) lookupFailed(what, id string, cause error) error {
	s.run.Counters.LookupFailures++
	if s.settings.LookupFailure == domain.LookupFailAbort {
		return fmt.Errorf("%w: %s for %s: %w", domain.ErrLookupFailed, what, id, cause)
	}
	logger.Warn("lookup of %s for %s failed, treating as not found: %v", what, id, cause)
	return nil
}

func (s *ingestSession) flush(ctx context.Context) error {
	if s.buffer.Len() == 0 {
		return nil
	}
	res, err := s.buffer.Flush(ctx)
	s.recordFlush(res, err)
	if err != nil {
		return fmt.Errorf("final flush: %w", err)
	}
	return nil
}

// recordFlush folds a flush outcome into the counters. A failed transaction
// is logged and the run carries on.
func (s *ingestSession) recordFlush(res domain.ApplyResult, err error) {
	s.run.Counters.Flushes++
	s.run.Counters.FailedWrites += int64(res.Failed)
	if err != nil {
		logger.Error("batch lost: %v", err)
	}
}

func (s *ingestSession) reportProgress() {
	p := domain.IngestProgress{
		RunID:    s.run.ID,
		Source:   s.source,
		Counters: s.run.Counters,
		At:       s.now(),
	}
	logger.Debug("read %d records, %d pairs", p.Counters.Read, p.Counters.Paired)
	if s.opts.Progress != nil {
		s.opts.Progress(p)
	}
}

// finish records the run's outcome. The run is returned even on error.
func (s *ingestSession) finish(ctx context.Context, runs driven.RunStore, runErr error) (*domain.IngestRun, error) {
	s.run.FinishedAt = s.now()
	switch {
	case runErr == nil:
		s.run.Status = domain.RunStatusCompleted
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		s.run.Status = domain.RunStatusCancelled
		s.run.Error = runErr.Error()
	default:
		s.run.Status = domain.RunStatusFailed
		s.run.Error = runErr.Error()
	}

	if err := runs.Save(context.WithoutCancel(ctx), *s.run); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("save run: %w", err))
	}

	logger.Info("Ingest %s: read %d, paired %d, inserted %d, replaced %d, failed writes %d",
		s.run.Status, s.run.Counters.Read, s.run.Counters.Paired, s.run.Counters.Inserted,
		s.run.Counters.Replaced, s.run.Counters.FailedWrites)
	return s.run, runErr
}
