package driven

// ConfigStore provides access to pipeline configuration.
// Keys are dotted paths such as "ingest.min_score".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt64 retrieves an integer configuration value.
	// The boolean is false if the key doesn't exist or isn't an integer.
	GetInt64(key string) (int64, bool)

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
