package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/rotfit/internal/core/domain"
)

var evalCmd = &cobra.Command{
	Use:   "eval p6 p7 p8 p9",
	Short: "Evaluate the model at given free exponents",
	Long: `Compute all nine derived constants at the given free exponents without
fitting, and compare them against the targets.

Separate negative values from flags with --, for example:
  rotfit eval -- -21.601 0.894 3.264 -5.526`,
	Args: cobra.ExactArgs(domain.NumFreeParams),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	free, err := parseFreeParams(args)
	if err != nil {
		return err
	}

	cfg, err := configService.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	report, err := fitService.Evaluate(cfg, free)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	report.RunID = uuid.New().String()

	return writeReport(cmd, report, outputFormat)
}

func parseFreeParams(args []string) (domain.FreeParams, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.FreeParams{}, fmt.Errorf("%w: p%d: %q is not a finite number",
				domain.ErrInvalidInput, domain.NumFixedExponents+i+1, arg)
		}
		values[i] = v
	}
	return domain.FreeParamsFromSlice(values)
}
