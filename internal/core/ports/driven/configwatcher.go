package driven

import "context"

// ConfigWatcher reports changes to the backing configuration.
type ConfigWatcher interface {
	// Watch blocks until ctx is done, calling onChange after each settled change.
	Watch(ctx context.Context, onChange func()) error
}
