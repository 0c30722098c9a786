package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/rotfit/internal/core/domain"
	"github.com/custodia-labs/rotfit/internal/logger"
)

var fitWatch bool

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit p6..p9 and print the report",
	Long: `Minimise the sum of squared log10 ratios between predicted and observed
values of mₑ, αₛ, mₚ and e with Nelder-Mead, then report all nine derived
constants against their targets.

With --watch the fit re-runs whenever the config file changes, until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().BoolVarP(&fitWatch, "watch", "w", false, "re-run the fit when the config file changes")
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, _ []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if fitWatch {
		return watchFit(ctx, cmd)
	}
	return fitOnce(ctx, cmd)
}

func fitOnce(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := configService.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	report, err := fitService.Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("fit failed: %w", err)
	}
	report.RunID = uuid.New().String()

	return writeReport(cmd, report, outputFormat)
}

func watchFit(ctx context.Context, cmd *cobra.Command) error {
	if configWatcher == nil {
		return fmt.Errorf("%w: --watch requires --config", domain.ErrInvalidInput)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Errors are reported but do not stop the watch; the next edit may fix them.
	rerun := func() {
		if err := fitOnce(ctx, cmd); err != nil && ctx.Err() == nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	}

	rerun()
	cmd.PrintErrf("Watching %s for changes (Ctrl-C to stop)\n", configService.Path())

	return configWatcher.Watch(ctx, func() {
		logger.Info("Config changed, re-running fit")
		rerun()
	})
}
