package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/INASIC/Chatbot/internal/core/domain"
	"github.com/INASIC/Chatbot/internal/core/ports/driven"
	"github.com/INASIC/Chatbot/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStoreDriver   = "store.driver"
	keyStoreDSN      = "store.dsn"
	keyMinScore      = "ingest.min_score"
	keyMaxWords      = "ingest.max_words"
	keyMaxChars      = "ingest.max_chars"
	keyBatchSize     = "ingest.batch_size"
	keyProgressEvery = "ingest.progress_every"
	keyLookupFailure = "ingest.lookup_failure"
	keyPageSize      = "export.page_size"
	keyProgressPages = "export.progress_pages"
	keyExportDir     = "export.dir"
)

// settingKeys lists every key in display order.
var settingKeys = []string{
	keyStoreDriver,
	keyStoreDSN,
	keyMinScore,
	keyMaxWords,
	keyMaxChars,
	keyBatchSize,
	keyProgressEvery,
	keyLookupFailure,
	keyPageSize,
	keyProgressPages,
	keyExportDir,
}

// SettingsService manages pipeline settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset or mistyped keys fall back to defaults.
func (s *SettingsService) Get() (*domain.PipelineSettings, error) {
	d := domain.DefaultPipelineSettings()

	settings := &domain.PipelineSettings{
		Store: domain.StoreSettings{
			Driver: domain.StoreDriver(s.getString(keyStoreDriver, d.Store.Driver.String())),
			DSN:    s.configStore.GetString(keyStoreDSN),
		},
		Ingest: domain.IngestSettings{
			MinScore:      s.getInt64(keyMinScore, d.Ingest.MinScore),
			MaxWords:      s.getInt(keyMaxWords, d.Ingest.MaxWords),
			MaxChars:      s.getInt(keyMaxChars, d.Ingest.MaxChars),
			BatchSize:     s.getInt(keyBatchSize, d.Ingest.BatchSize),
			ProgressEvery: s.getInt64(keyProgressEvery, d.Ingest.ProgressEvery),
			LookupFailure: domain.LookupFailurePolicy(
				s.getString(keyLookupFailure, d.Ingest.LookupFailure.String())),
		},
		Export: domain.ExportSettings{
			PageSize:      s.getInt(keyPageSize, d.Export.PageSize),
			ProgressPages: s.getInt(keyProgressPages, d.Export.ProgressPages),
			Dir:           s.configStore.GetString(keyExportDir),
		},
	}

	return settings, nil
}

// Set parses value for key, validates the resulting settings and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var stored any
	switch key {
	case keyStoreDriver:
		settings.Store.Driver = domain.StoreDriver(value)
		stored = value
	case keyStoreDSN:
		settings.Store.DSN = value
		stored = value
	case keyLookupFailure:
		settings.Ingest.LookupFailure = domain.LookupFailurePolicy(value)
		stored = value
	case keyExportDir:
		settings.Export.Dir = value
		stored = value
	case keyMinScore, keyMaxWords, keyMaxChars, keyBatchSize,
		keyProgressEvery, keyPageSize, keyProgressPages:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
		}
		applyInt(settings, key, n)
		stored = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func applyInt(settings *domain.PipelineSettings, key string, n int64) {
	switch key {
	case keyMinScore:
		settings.Ingest.MinScore = n
	case keyMaxWords:
		settings.Ingest.MaxWords = int(n)
	case keyMaxChars:
		settings.Ingest.MaxChars = int(n)
	case keyBatchSize:
		settings.Ingest.BatchSize = int(n)
	case keyProgressEvery:
		settings.Ingest.ProgressEvery = n
	case keyPageSize:
		settings.Export.PageSize = int(n)
	case keyProgressPages:
		settings.Export.ProgressPages = int(n)
	}
}

// Keys returns every supported config key in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.PipelineSettings {
	return domain.DefaultPipelineSettings()
}

// ConfigPath returns the path of the backing config file.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// Helper methods for reading with defaults

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt64(key string, defaultVal int64) int64 {
	if val, ok := s.configStore.GetInt64(key); ok {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val, ok := s.configStore.GetInt64(key); ok {
		return int(val)
	}
	return defaultVal
}
