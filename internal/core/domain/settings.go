package domain

import "fmt"

const unknownDescription = "Unknown"

// StoreDriver selects the pair store backend.
type StoreDriver string

// Available store drivers.
const (
	// StoreDriverSQLite keeps pairs in a local SQLite file.
	StoreDriverSQLite StoreDriver = "sqlite"

	// StoreDriverPostgres keeps pairs in a Postgres database.
	StoreDriverPostgres StoreDriver = "postgres"
)

// IsValid returns true if the driver is recognised.
func (d StoreDriver) IsValid() bool {
	switch d {
	case StoreDriverSQLite, StoreDriverPostgres:
		return true
	default:
		return false
	}
}

// RequiresDSN returns true if the driver needs a connection string.
func (d StoreDriver) RequiresDSN() bool {
	return d == StoreDriverPostgres
}

// String returns the string representation.
func (d StoreDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d StoreDriver) Description() string {
	switch d {
	case StoreDriverSQLite:
		return "SQLite (local file)"
	case StoreDriverPostgres:
		return "PostgreSQL"
	default:
		return unknownDescription
	}
}

// LookupFailurePolicy decides what a failed store lookup means.
type LookupFailurePolicy string

// Lookup failure policies.
const (
	// LookupFailOpen treats a failed lookup as "not found" and keeps going.
	// The failure is logged and counted.
	LookupFailOpen LookupFailurePolicy = "open"

	// LookupFailAbort stops the ingest run on the first failed lookup.
	LookupFailAbort LookupFailurePolicy = "abort"
)

// IsValid returns true if the policy is recognised.
func (p LookupFailurePolicy) IsValid() bool {
	return p == LookupFailOpen || p == LookupFailAbort
}

// String returns the string representation.
func (p LookupFailurePolicy) String() string {
	return string(p)
}

// StoreSettings configures the pair store.
type StoreSettings struct {
	Driver StoreDriver
	DSN    string
}

// IngestSettings configures selection and batching.
type IngestSettings struct {
	// MinScore is the lowest score a reply may have to be stored.
	MinScore int64

	// MaxWords is the largest accepted whitespace-split word count.
	MaxWords int

	// MaxChars is the largest accepted body length in characters.
	MaxChars int

	// BatchSize is the pending write count that triggers a flush once exceeded.
	BatchSize int

	// ProgressEvery is the number of records between progress reports.
	ProgressEvery int64

	// LookupFailure decides how failed lookups are handled.
	LookupFailure LookupFailurePolicy
}

// ExportSettings configures corpus export.
type ExportSettings struct {
	// PageSize is the number of pairs read per page.
	PageSize int

	// ProgressPages is the number of pages between progress reports.
	ProgressPages int

	// Dir is the directory the corpus files are appended to.
	// Empty means the default location.
	Dir string
}

// PipelineSettings holds every configurable pipeline setting.
type PipelineSettings struct {
	Store  StoreSettings
	Ingest IngestSettings
	Export ExportSettings
}

// DefaultPipelineSettings returns the reference configuration.
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		Store: StoreSettings{
			Driver: StoreDriverSQLite,
		},
		Ingest: IngestSettings{
			MinScore:      2,
			MaxWords:      50,
			MaxChars:      1000,
			BatchSize:     1000,
			ProgressEvery: 100000,
			LookupFailure: LookupFailOpen,
		},
		Export: ExportSettings{
			PageSize:      5000,
			ProgressPages: 20,
		},
	}
}

// Validate checks settings for values the pipeline cannot run with.
func (s PipelineSettings) Validate() error {
	if !s.Store.Driver.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, s.Store.Driver)
	}
	if s.Store.Driver.RequiresDSN() && s.Store.DSN == "" {
		return fmt.Errorf("%w: store.dsn is required for %s", ErrInvalidInput, s.Store.Driver)
	}
	if s.Ingest.MaxWords <= 0 || s.Ingest.MaxChars <= 0 {
		return fmt.Errorf("%w: ingest limits must be positive", ErrInvalidInput)
	}
	if s.Ingest.BatchSize <= 0 {
		return fmt.Errorf("%w: ingest.batch_size must be positive", ErrInvalidInput)
	}
	if s.Ingest.ProgressEvery <= 0 {
		return fmt.Errorf("%w: ingest.progress_every must be positive", ErrInvalidInput)
	}
	if !s.Ingest.LookupFailure.IsValid() {
		return fmt.Errorf("%w: ingest.lookup_failure %q", ErrInvalidInput, s.Ingest.LookupFailure)
	}
	if s.Export.PageSize <= 0 {
		return fmt.Errorf("%w: export.page_size must be positive", ErrInvalidInput)
	}
	if s.Export.ProgressPages <= 0 {
		return fmt.Errorf("%w: export.progress_pages must be positive", ErrInvalidInput)
	}
	return nil
}
