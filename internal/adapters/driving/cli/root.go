package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rotfit/internal/core/domain"
	"github.com/custodia-labs/rotfit/internal/core/ports/driven"
	"github.com/custodia-labs/rotfit/internal/core/ports/driving"
	"github.com/custodia-labs/rotfit/internal/logger"
)

// version is overridden at build time.
var version = "dev"

// Global flags.
var (
	verbose      bool
	configPath   string
	outputFormat string
)

// Services used by the commands. Set by SetServices or the bootstrap hook.
var (
	fitService    driving.FitService
	configService driving.ConfigService
	configWatcher driven.ConfigWatcher
)

// Services holds everything the commands need.
type Services struct {
	Fit    driving.FitService
	Config driving.ConfigService
	// Watcher is nil when no config file is in use.
	Watcher driven.ConfigWatcher
}

// Bootstrap builds the services once flags are parsed.
// path is the value of --config, empty when unset.
type Bootstrap func(path string) (*Services, error)

var bootstrap Bootstrap

var rootCmd = &cobra.Command{
	Use:   "rotfit",
	Short: "Fit free exponents of the ROT model to physical constants",
	Long: `rotfit fits the four free exponents p6..p9 of the ROT model so that its
closed-form relations reproduce the electron mass, the strong coupling, the
proton mass and the elementary charge.

Running rotfit without a subcommand performs the fit and prints the report.
Defaults are compiled in; a TOML file passed with --config overrides them.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runFit,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", formatTable,
		"output format: table, json or toml")
}

// Execute runs the root command. Reports go to stdout, diagnostics to stderr.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the hook that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly.
func SetServices(s *Services) {
	if s == nil {
		fitService, configService, configWatcher = nil, nil, nil
		return
	}
	fitService = s.Fit
	configService = s.Config
	configWatcher = s.Watcher
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if err := checkFormat(outputFormat); err != nil {
		return err
	}
	if bootstrap == nil {
		return nil
	}

	s, err := bootstrap(configPath)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	return nil
}

func requireServices() error {
	if fitService == nil || configService == nil {
		return fmt.Errorf("%w: services not configured", domain.ErrInvalidInput)
	}
	return nil
}
