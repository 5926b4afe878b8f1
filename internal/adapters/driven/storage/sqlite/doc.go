// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements two store interfaces
// through a single database connection:
//
//   - PairStore: parent/best-reply pairs
//   - RunStore: ingest run history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Batches
//
// PairStore.Apply runs a whole batch in one transaction. A constraint
// violation aborts only the offending statement, so the rest of the batch
// still commits.
//
// # Data Location
//
// By default, the database is stored at ~/.chatbot/data/chatbot.db
package sqlite
