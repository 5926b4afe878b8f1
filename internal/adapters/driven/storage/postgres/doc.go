// Package postgres provides a PostgreSQL implementation of the pair and run
// stores, for corpora that outgrow a single SQLite file.
//
// Connections are pooled with pgx. Migrations are embedded and applied with
// goose when the store is opened.
package postgres
