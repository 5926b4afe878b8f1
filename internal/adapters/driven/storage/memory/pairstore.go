package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// Ensure PairStore implements the interface.
var _ driven.PairStore = (*PairStore)(nil)

// PairStore is an in-memory implementation of driven.PairStore.
// It enforces the same uniqueness rules as the SQL schema.
type PairStore struct {
	mu       sync.RWMutex
	pairs    map[string]domain.Pair // by parent ID
	byReply  map[string]string      // reply ID -> parent ID
	failNext map[string]error       // parent ID -> injected Apply error
	lookErr  error
}

// NewPairStore creates a new in-memory pair store.
func NewPairStore() *PairStore {
	return &PairStore{
		pairs:    make(map[string]domain.Pair),
		byReply:  make(map[string]string),
		failNext: make(map[string]error),
	}
}

// FailLookups makes every lookup report err. Pass nil to restore.
func (s *PairStore) FailLookups(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookErr = err
}

// FailWrite makes the next write for parentID fail with err.
func (s *PairStore) FailWrite(parentID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[parentID] = err
}

// ExistingReply returns the stored reply ID and score for a parent.
func (s *PairStore) ExistingReply(_ context.Context, parentID string) domain.ReplyLookup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lookErr != nil {
		return domain.ReplyFailed(s.lookErr)
	}
	p, ok := s.pairs[parentID]
	if !ok {
		return domain.ReplyNotFound()
	}
	return domain.ReplyFound(p.ReplyID, p.Score)
}

// ReplyBody returns the body of the row whose reply ID matches.
func (s *PairStore) ReplyBody(_ context.Context, replyID string) domain.BodyLookup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lookErr != nil {
		return domain.BodyFailed(s.lookErr)
	}
	parentID, ok := s.byReply[replyID]
	if !ok {
		return domain.BodyNotFound()
	}
	return domain.BodyFound(s.pairs[parentID].ReplyBody)
}

// Apply executes writes in order, skipping any that violate a constraint.
func (s *PairStore) Apply(_ context.Context, writes []domain.PairWrite) (domain.ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res domain.ApplyResult
	for _, w := range writes {
		if err := s.apply(w); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, err)
			continue
		}
		res.Applied++
	}
	return res, nil
}

func (s *PairStore) apply(w domain.PairWrite) error {
	p := w.Pair
	if err, ok := s.failNext[p.ParentID]; ok {
		delete(s.failNext, p.ParentID)
		return err
	}

	switch w.Kind {
	case domain.WriteInsertWithParent, domain.WriteInsertWithoutParent:
		if _, exists := s.pairs[p.ParentID]; exists {
			return fmt.Errorf("insert %s: parent_id already exists", p.ParentID)
		}
		if _, exists := s.byReply[p.ReplyID]; exists {
			return fmt.Errorf("insert %s: reply_id %s already exists", p.ParentID, p.ReplyID)
		}
		if w.Kind == domain.WriteInsertWithoutParent {
			p.ParentBody, p.HasParent = "", false
		}
		s.pairs[p.ParentID] = p
		s.byReply[p.ReplyID] = p.ParentID

	case domain.WriteReplace:
		old, exists := s.pairs[p.ParentID]
		if !exists {
			return nil // UPDATE matching no rows
		}
		if owner, taken := s.byReply[p.ReplyID]; taken && owner != p.ParentID {
			return fmt.Errorf("replace %s: reply_id %s already exists", p.ParentID, p.ReplyID)
		}
		if !p.HasParent {
			p.ParentBody, p.HasParent = old.ParentBody, old.HasParent
		}
		delete(s.byReply, old.ReplyID)
		s.pairs[p.ParentID] = p
		s.byReply[p.ReplyID] = p.ParentID

	default:
		return fmt.Errorf("%w: write kind %q", domain.ErrInvalidInput, w.Kind)
	}
	return nil
}

// Get retrieves a pair by parent ID.
func (s *PairStore) Get(_ context.Context, parentID string) (*domain.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pairs[parentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// ExportPage returns exportable pairs after cursor in (CreatedUTC, ParentID) order.
func (s *PairStore) ExportPage(_ context.Context, cursor domain.ExportCursor, limit int) ([]domain.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []domain.Pair
	for _, p := range s.pairs {
		if !p.HasParent || p.Score <= 0 {
			continue
		}
		if cursor.Started && !after(p, cursor) {
			continue
		}
		rows = append(rows, p)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedUTC != rows[j].CreatedUTC {
			return rows[i].CreatedUTC < rows[j].CreatedUTC
		}
		return rows[i].ParentID < rows[j].ParentID
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func after(p domain.Pair, c domain.ExportCursor) bool {
	if p.CreatedUTC != c.CreatedUTC {
		return p.CreatedUTC > c.CreatedUTC
	}
	return p.ParentID > c.ParentID
}

// Stats counts stored rows.
func (s *PairStore) Stats(_ context.Context) (domain.PairStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st domain.PairStats
	for _, p := range s.pairs {
		st.Total++
		if p.HasParent {
			st.Paired++
			if p.Score > 0 {
				st.Exportable++
			}
		}
	}
	return st, nil
}

// PruneUnpaired deletes rows without a parent body.
func (s *PairStore) PruneUnpaired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, p := range s.pairs {
		if p.HasParent {
			continue
		}
		delete(s.byReply, p.ReplyID)
		delete(s.pairs, id)
		n++
	}
	return n, nil
}
