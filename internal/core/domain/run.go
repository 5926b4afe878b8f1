package domain

import "time"

// RunStatus describes how an ingest run ended.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusCancelled RunStatus = "cancelled"
	RunStatusFailed    RunStatus = "failed"
)

// IngestCounters are the running totals of one ingest run.
type IngestCounters struct {
	// Read counts every record pulled from the dump, including skipped ones.
	Read int64

	// Paired counts rows inserted with a resolved parent body.
	Paired int64

	// Skipped counts malformed records and records skipped by --skip.
	Skipped int64

	// Rejected counts candidates failing the score or body checks.
	Rejected int64

	// Inserted counts inserts of either kind.
	Inserted int64

	// Replaced counts replace writes.
	Replaced int64

	// Discarded counts candidates that did not beat the stored score.
	Discarded int64

	// LookupFailures counts failed store lookups.
	LookupFailures int64

	// FailedWrites counts statements skipped during flushes.
	FailedWrites int64

	// Flushes counts committed batches.
	Flushes int64
}

// IngestRun records one invocation of the ingest command.
type IngestRun struct {
	// ID is a UUID assigned at start.
	ID string

	// Sources lists the dump paths in processing order.
	Sources []string

	StartedAt  time.Time
	FinishedAt time.Time

	Status RunStatus

	// Error is the terminal error message, if any.
	Error string

	Counters IngestCounters
}

// Duration returns the wall-clock time the run took so far.
func (r IngestRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// IngestProgress is reported periodically during ingest.
type IngestProgress struct {
	RunID    string
	Source   string
	Counters IngestCounters
	At       time.Time
}
