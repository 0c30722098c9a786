package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rotfit/internal/core/domain"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the fit configuration",
	Long: `View the resolved configuration or write the defaults to a TOML file.

Recognised keys:
  model.base_params       5 floats: l₀, t₀, S₀, r₀, η₀
  model.fixed_exponents   5 floats: p1..p5
  targets.<name>          observed value for c, hbar, G, alpha, Lambda,
                          m_e, alpha_s, m_p, e
  fit.initial_guess       4 floats: p6..p9
  fit.max_iter            iteration cap
  fit.tolerance           absolute objective improvement treated as a stall
  fit.convergence_window  stalled iterations before stopping
  fit.simplex_size        initial simplex edge length`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the config file",
	Long: `Write the compiled-in defaults to the file named by --config.
An existing file is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configService == nil {
		return errors.New("config service not configured")
	}

	cfg, err := configService.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	switch outputFormat {
	case formatJSON:
		return outputJSON(cmd, cfg)
	case formatTOML:
		return outputTOML(cmd, cfg)
	}

	cmd.Println("Current Config")
	cmd.Println("==============")
	cmd.Printf("Source: %s\n", configService.Path())
	cmd.Println()

	b := cfg.Base
	cmd.Println("[Model]")
	cmd.Printf("  Base params: l₀=%g t₀=%g S₀=%g r₀=%g η₀=%g\n",
		b.Length, b.Time, b.Entropy, b.EntropyRadius, b.FieldAmplitude)
	cmd.Printf("  Fixed exponents: %v\n", cfg.Fixed[:])
	cmd.Println()

	cmd.Println("[Targets]")
	for _, name := range domain.AllConstants() {
		cmd.Printf("  %s: %g\n", name, cfg.Targets[name])
	}
	cmd.Println()

	m := cfg.Minimizer
	cmd.Println("[Fit]")
	cmd.Printf("  Initial guess: %v\n", cfg.InitialGuess[:])
	cmd.Printf("  Max iterations: %d\n", m.MaxIterations)
	cmd.Printf("  Tolerance: %g\n", m.Tolerance)
	cmd.Printf("  Convergence window: %d\n", m.ConvergenceWindow)
	cmd.Printf("  Simplex size: %g\n", m.SimplexSize)

	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if configService == nil {
		return errors.New("config service not configured")
	}
	if configPath == "" {
		return fmt.Errorf("%w: config init requires --config", domain.ErrInvalidInput)
	}

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return fmt.Errorf("%w: %s (use --force to overwrite)", domain.ErrAlreadyExists, configPath)
	}

	if err := configService.Save(domain.DefaultFitConfig()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	cmd.Printf("Wrote default configuration to %s\n", configService.Path())
	return nil
}
