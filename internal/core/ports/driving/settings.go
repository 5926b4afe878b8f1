package driving

import "github.com/INASIC/Chatbot/internal/core/domain"

// SettingsService manages pipeline settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for unset keys.
	Get() (*domain.PipelineSettings, error)

	// Set updates a single setting by its config key (e.g. "ingest.min_score").
	// The value is parsed according to the key's type and validated.
	Set(key, value string) error

	// Keys returns every supported config key in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.PipelineSettings

	// ConfigPath returns the path of the backing config file.
	ConfigPath() string
}
