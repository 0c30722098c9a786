package driving

import (
	"context"

	"github.com/custodia-labs/rotfit/internal/core/domain"
)

// FitService fits the free exponents and evaluates the model.
type FitService interface {
	// Run minimizes the objective from cfg.InitialGuess and returns the
	// full report at the optimum.
	Run(ctx context.Context, cfg domain.FitConfig) (*domain.FitReport, error)

	// Evaluate computes the report at the given free exponents without fitting.
	Evaluate(cfg domain.FitConfig, free domain.FreeParams) (*domain.FitReport, error)

	// Objective returns the sum of squared log10 ratios at free.
	Objective(cfg domain.FitConfig, free domain.FreeParams) (float64, error)
}
