// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CommentSource: Streams comments from a dump file
//   - Normaliser: Cleans a comment body for storage and export
//   - BodyFilter: Decides whether a body is usable training data
//   - PairStore: Parent/reply pair persistence
//   - RunStore: Ingest run history
//   - CorpusWriter: Appends exported pairs to the parallel text files
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
