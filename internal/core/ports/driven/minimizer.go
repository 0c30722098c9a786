package driven

import (
	"context"

	"github.com/custodia-labs/rotfit/internal/core/domain"
)

// Objective is a scalar function of a parameter vector. An error aborts
// the minimization and is returned to the caller unchanged.
type Objective func(x []float64) (float64, error)

// Minimizer is a derivative-free local minimization strategy.
// Implementations must be deterministic for identical inputs.
type Minimizer interface {
	// Minimize searches for a minimum of objective starting at initial.
	// Reaching an iteration or evaluation cap is reported through the
	// result status, not as an error.
	Minimize(ctx context.Context, objective Objective, initial []float64, opts domain.MinimizerOptions) (*domain.OptimizationResult, error)
}
