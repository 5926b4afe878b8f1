package body

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/INASIC/Chatbot/internal/core/ports/driven"
)

// Markers left in place of moderated or deleted comments.
const (
	DeletedMarker = "[deleted]"
	RemovedMarker = "[removed]"
)

// Rejection reasons returned by Filter.Check.
var (
	ErrTooManyWords = errors.New("too many words")
	ErrEmpty        = errors.New("empty body")
	ErrTooLong      = errors.New("body too long")
	ErrDeleted      = errors.New("deleted body")
	ErrRemoved      = errors.New("removed body")
)

// Ensure Filter implements the interface.
var _ driven.BodyFilter = (*Filter)(nil)

// Filter accepts bodies within word and character limits that are not
// moderation markers.
type Filter struct {
	MaxWords int
	MaxChars int
}

// NewFilter creates a filter with the given limits.
func NewFilter(maxWords, maxChars int) *Filter {
	return &Filter{MaxWords: maxWords, MaxChars: maxChars}
}

// Check returns nil if text is acceptable, otherwise the first failed rule.
// Words are whitespace-separated tokens; length is counted in characters.
func (f *Filter) Check(text string) error {
	if words := len(strings.Fields(text)); words > f.MaxWords {
		return fmt.Errorf("%w: %d > %d", ErrTooManyWords, words, f.MaxWords)
	}

	chars := utf8.RuneCountInString(text)
	if chars < 1 {
		return ErrEmpty
	}
	if chars > f.MaxChars {
		return fmt.Errorf("%w: %d > %d", ErrTooLong, chars, f.MaxChars)
	}

	switch text {
	case DeletedMarker:
		return ErrDeleted
	case RemovedMarker:
		return ErrRemoved
	}
	return nil
}

// Accept reports whether text passes every rule.
func (f *Filter) Accept(text string) bool {
	return f.Check(text) == nil
}
