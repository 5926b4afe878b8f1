package services

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/INASIC/Chatbot/internal/adapters/driven/storage/memory"
	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
	"github.com/INASIC/Chatbot/internal/normalisers/body"
)

// sliceSource replays canned records. A non-nil error in errs at index i is
// returned instead of records[i].
type sliceSource struct {
	name    string
	records []domain.Comment
	errs    map[int]error
	pos     int
	closed  bool
}

func (s *sliceSource) Name() string { return s.name }

func (s *sliceSource) Next(_ context.Context) (domain.Comment, error) {
	if s.pos >= len(s.records) {
		return domain.Comment{}, io.EOF
	}
	i := s.pos
	s.pos++
	if err, ok := s.errs[i]; ok {
		return domain.Comment{}, err
	}
	return s.records[i], nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

// mapOpener opens sources by path.
type mapOpener struct {
	sources map[string]*sliceSource
}

func newOpener(sources ...*sliceSource) *mapOpener {
	o := &mapOpener{sources: make(map[string]*sliceSource)}
	for _, s := range sources {
		o.sources[s.name] = s
	}
	return o
}

func (o *mapOpener) Open(path string) (driven.CommentSource, error) {
	s, ok := o.sources[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, domain.ErrNotFound)
	}
	return s, nil
}

// recordingWriter captures exported pages.
type recordingWriter struct {
	mu      sync.Mutex
	pages   []recordedPage
	failOn  int
	failErr error
}

type recordedPage struct {
	split domain.Split
	pairs []domain.Pair
}

func (w *recordingWriter) WritePage(split domain.Split, pairs []domain.Pair) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failErr != nil && len(w.pages)+1 == w.failOn {
		return w.failErr
	}
	w.pages = append(w.pages, recordedPage{split: split, pairs: append([]domain.Pair(nil), pairs...)})
	return nil
}

func (w *recordingWriter) Dir() string  { return "/tmp/corpus" }
func (w *recordingWriter) Close() error { return nil }

func (w *recordingWriter) rows(split domain.Split) []domain.Pair {
	var out []domain.Pair
	for _, p := range w.pages {
		if p.split == split {
			out = append(out, p.pairs...)
		}
	}
	return out
}

func comment(parent, reply string, score int64, text string) domain.Comment {
	return domain.Comment{
		ParentID:   parent,
		ReplyID:    reply,
		Body:       text,
		Subreddit:  "AskReddit",
		CreatedUTC: 1420070400,
		Score:      score,
	}
}

func testIngestSettings() domain.IngestSettings {
	return domain.DefaultPipelineSettings().Ingest
}

func newTestIngestService(store *memory.PairStore, opener driven.CommentSourceOpener, settings domain.IngestSettings) (*IngestService, *memory.RunStore) {
	runs := memory.NewRunStore()
	svc := NewIngestService(
		store,
		runs,
		opener,
		body.New(),
		body.NewFilter(settings.MaxWords, settings.MaxChars),
		settings,
	)
	return svc, runs
}
