package driving

import "github.com/custodia-labs/rotfit/internal/core/domain"

// ConfigService resolves fit configuration.
type ConfigService interface {
	// Load re-reads the backing store and returns the validated config,
	// with compiled-in defaults for any key the store does not set.
	Load() (domain.FitConfig, error)

	// Save writes every key of cfg to the backing store.
	Save(cfg domain.FitConfig) error

	// Path returns the location of the backing store.
	Path() string
}
