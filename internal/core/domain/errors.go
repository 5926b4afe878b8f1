package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedRecord indicates a dump line could not be decoded.
	// The record is counted as read and skipped.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrMissingField indicates a dump record lacks a required key.
	// The record is counted as read and skipped.
	ErrMissingField = errors.New("missing required field")

	// ErrLookupFailed indicates a store lookup failed rather than
	// returning no row.
	ErrLookupFailed = errors.New("store lookup failed")

	// ErrStoreUnavailable indicates the pair store could not be opened.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUnsupportedDriver indicates an unknown store.driver setting.
	ErrUnsupportedDriver = errors.New("unsupported store driver")

	// ErrUnsupportedType indicates an unknown dump compression or format.
	ErrUnsupportedType = errors.New("unsupported type")
)

func missingField(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, name)
}

// IsSkippable reports whether err marks a single bad record that the
// ingest driver should count and skip.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrMalformedRecord) || errors.Is(err, ErrMissingField)
}
