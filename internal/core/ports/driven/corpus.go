package driven

import "github.com/INASIC/Chatbot/internal/core/domain"

// CorpusWriter appends exported pairs to line-aligned text files.
// Line i of a split's prompt file corresponds to line i of its reply file.
type CorpusWriter interface {
	// WritePage appends every pair's parent body to the split's prompt file
	// and its reply body to the reply file, preserving order.
	WritePage(split domain.Split, pairs []domain.Pair) error

	// Dir returns the directory the files are written to.
	Dir() string

	// Close flushes and closes all files.
	Close() error
}
