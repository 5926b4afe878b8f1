package driven

import (
	"context"

	"github.com/INASIC/Chatbot/internal/core/domain"
)

// CommentSource streams comments from a dump, one record per call.
// A source is single-pass: once exhausted it cannot be rewound.
type CommentSource interface {
	// Name identifies the source, typically its file path.
	Name() string

	// Next returns the next comment. It returns io.EOF at the end of the
	// stream. An error matching domain.IsSkippable means one record was
	// consumed but could not be decoded; the stream may continue.
	Next(ctx context.Context) (domain.Comment, error)

	// Close releases the underlying file.
	Close() error
}

// CommentSourceOpener opens a dump path as a CommentSource.
type CommentSourceOpener interface {
	Open(path string) (CommentSource, error)
}
