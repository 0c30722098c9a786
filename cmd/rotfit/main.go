// Command rotfit fits the free exponents of the ROT model to physical constants.
package main

import (
	"os"

	"github.com/custodia-labs/rotfit/internal/adapters/driven/config/file"
	"github.com/custodia-labs/rotfit/internal/adapters/driven/minimizer/neldermead"
	"github.com/custodia-labs/rotfit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rotfit/internal/adapters/driving/cli"
	"github.com/custodia-labs/rotfit/internal/core/ports/driven"
	"github.com/custodia-labs/rotfit/internal/core/services"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters. Without a config file the compiled-in
// defaults are served from memory.
func bootstrap(configPath string) (*cli.Services, error) {
	var (
		store   driven.ConfigStore
		watcher driven.ConfigWatcher
	)
	if configPath != "" {
		fileStore, err := file.NewConfigStore(configPath)
		if err != nil {
			return nil, err
		}
		store = fileStore
		watcher = file.NewWatcher(configPath, file.DefaultDebounce)
	} else {
		store = memory.NewConfigStore()
	}

	return &cli.Services{
		Fit:     services.NewFitService(neldermead.New()),
		Config:  services.NewConfigService(store),
		Watcher: watcher,
	}, nil
}
