// Package domain defines the core business entities for the corpus builder.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Comment: One record read from a comment dump
//   - Pair: A stored parent/best-reply row
//   - PairWrite: A pending insert or replace against the pair store
//   - IngestRun: The record of one ingest invocation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
