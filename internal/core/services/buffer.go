package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
	"github.com/INASIC/Chatbot/internal/logger"
)

// pendingReply is the buffered state of a parent's row.
type pendingReply struct {
	replyID string
	score   int64
}

// pendingBody is the buffered state of a reply ID. gone marks a reply
// displaced by a buffered replace.
type pendingBody struct {
	body string
	gone bool
}

// WriteBuffer collects pair writes and commits them in batches.
//
// Lookups go through the buffer: a parent or reply written earlier in the
// same batch is visible before it is committed. The overlay is dropped on
// every flush, after which the store is authoritative again.
//
// A WriteBuffer belongs to one ingest session and is not safe for
// concurrent use.
type WriteBuffer struct {
	store     driven.PairStore
	threshold int

	pending  []domain.PairWrite
	byParent map[string]pendingReply
	byReply  map[string]pendingBody

	warn rate.Sometimes
}

// NewWriteBuffer creates a buffer that flushes once it holds more than
// threshold writes.
func NewWriteBuffer(store driven.PairStore, threshold int) *WriteBuffer {
	return &WriteBuffer{
		store:     store,
		threshold: threshold,
		pending:   make([]domain.PairWrite, 0, threshold+1),
		byParent:  make(map[string]pendingReply),
		byReply:   make(map[string]pendingBody),
		warn:      rate.Sometimes{First: 5, Interval: 10 * time.Second},
	}
}

// Len returns the number of buffered writes.
func (b *WriteBuffer) Len() int {
	return len(b.pending)
}

// Enqueue appends a write to the buffer.
func (b *WriteBuffer) Enqueue(w domain.PairWrite) {
	b.pending = append(b.pending, w)

	p := w.Pair
	if w.Kind == domain.WriteReplace && w.PreviousReplyID != "" && w.PreviousReplyID != p.ReplyID {
		b.byReply[w.PreviousReplyID] = pendingBody{gone: true}
	}
	b.byParent[p.ParentID] = pendingReply{replyID: p.ReplyID, score: p.Score}
	b.byReply[p.ReplyID] = pendingBody{body: p.ReplyBody}
}

// ExistingReply returns the current reply for parentID, buffered or stored.
func (b *WriteBuffer) ExistingReply(ctx context.Context, parentID string) domain.ReplyLookup {
	if r, ok := b.byParent[parentID]; ok {
		return domain.ReplyFound(r.replyID, r.score)
	}
	return b.store.ExistingReply(ctx, parentID)
}

// ReplyBody resolves the body of replyID, buffered or stored.
func (b *WriteBuffer) ReplyBody(ctx context.Context, replyID string) domain.BodyLookup {
	if r, ok := b.byReply[replyID]; ok {
		if r.gone {
			return domain.BodyNotFound()
		}
		return domain.BodyFound(r.body)
	}
	return b.store.ReplyBody(ctx, replyID)
}

// FlushIfFull flushes when the buffer holds more than the threshold.
// The boolean reports whether a flush was attempted.
func (b *WriteBuffer) FlushIfFull(ctx context.Context) (domain.ApplyResult, bool, error) {
	if len(b.pending) <= b.threshold {
		return domain.ApplyResult{}, false, nil
	}
	res, err := b.Flush(ctx)
	return res, true, err
}

// Flush commits every buffered write in one transaction and empties the
// buffer. Statements that fail individually are skipped and reported in the
// result. If the transaction itself fails the whole batch is lost and the
// error is returned.
func (b *WriteBuffer) Flush(ctx context.Context) (domain.ApplyResult, error) {
	if len(b.pending) == 0 {
		return domain.ApplyResult{}, nil
	}

	batch := b.pending
	b.pending = make([]domain.PairWrite, 0, b.threshold+1)
	clear(b.byParent)
	clear(b.byReply)

	logger.Debug("flushing %d pair writes", len(batch))
	res, err := b.store.Apply(ctx, batch)
	if err != nil {
		return domain.ApplyResult{Failed: len(batch)}, fmt.Errorf("applying batch of %d writes: %w", len(batch), err)
	}

	for _, stmtErr := range res.Errors {
		b.warn.Do(func() {
			logger.Warn("skipped pair write: %v", stmtErr)
		})
	}
	return res, nil
}
