package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDriver_IsValid(t *testing.T) {
	assert.True(t, StoreDriverSQLite.IsValid())
	assert.True(t, StoreDriverPostgres.IsValid())
	assert.False(t, StoreDriver("mysql").IsValid())
}

func TestStoreDriver_Description(t *testing.T) {
	assert.Equal(t, "SQLite (local file)", StoreDriverSQLite.Description())
	assert.Equal(t, "PostgreSQL", StoreDriverPostgres.Description())
	assert.Equal(t, "Unknown", StoreDriver("x").Description())
}

func TestDefaultPipelineSettings(t *testing.T) {
	s := DefaultPipelineSettings()

	assert.Equal(t, StoreDriverSQLite, s.Store.Driver)
	assert.Equal(t, int64(2), s.Ingest.MinScore)
	assert.Equal(t, 50, s.Ingest.MaxWords)
	assert.Equal(t, 1000, s.Ingest.MaxChars)
	assert.Equal(t, 1000, s.Ingest.BatchSize)
	assert.Equal(t, int64(100000), s.Ingest.ProgressEvery)
	assert.Equal(t, LookupFailOpen, s.Ingest.LookupFailure)
	assert.Equal(t, 5000, s.Export.PageSize)
	assert.Equal(t, 20, s.Export.ProgressPages)
	require.NoError(t, s.Validate())
}

func TestPipelineSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PipelineSettings)
		target error
	}{
		{"unknown driver", func(s *PipelineSettings) { s.Store.Driver = "mysql" }, ErrUnsupportedDriver},
		{"postgres without dsn", func(s *PipelineSettings) { s.Store.Driver = StoreDriverPostgres }, ErrInvalidInput},
		{"zero words", func(s *PipelineSettings) { s.Ingest.MaxWords = 0 }, ErrInvalidInput},
		{"zero batch", func(s *PipelineSettings) { s.Ingest.BatchSize = 0 }, ErrInvalidInput},
		{"zero progress", func(s *PipelineSettings) { s.Ingest.ProgressEvery = 0 }, ErrInvalidInput},
		{"bad policy", func(s *PipelineSettings) { s.Ingest.LookupFailure = "maybe" }, ErrInvalidInput},
		{"zero page", func(s *PipelineSettings) { s.Export.PageSize = 0 }, ErrInvalidInput},
		{"zero progress pages", func(s *PipelineSettings) { s.Export.ProgressPages = 0 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultPipelineSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tt.target)
		})
	}
}

func TestPipelineSettings_Validate_PostgresWithDSN(t *testing.T) {
	s := DefaultPipelineSettings()
	s.Store.Driver = StoreDriverPostgres
	s.Store.DSN = "postgres://localhost/chatbot"
	assert.NoError(t, s.Validate())
}
