package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
// Keys use dot notation, e.g. "fit.max_iter".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetFloat retrieves a numeric configuration value.
	// Integers are widened. The boolean is false if the key doesn't exist
	// or isn't numeric.
	GetFloat(key string) (float64, bool)

	// GetFloatSlice retrieves a numeric slice configuration value.
	// Returns nil and false if the key doesn't exist, isn't a slice,
	// or holds a non-numeric element.
	GetFloatSlice(key string) ([]float64, bool)

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
