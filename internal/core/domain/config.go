package domain

import (
	"fmt"
	"math"
)

// Minimizer defaults.
const (
	DefaultMaxIterations     = 40000
	DefaultTolerance         = 1e-13
	DefaultConvergenceWindow = 400
	DefaultSimplexSize       = 0.05
)

// MinimizerOptions configures a derivative-free minimizer run.
type MinimizerOptions struct {
	// MaxIterations caps the number of major iterations.
	MaxIterations int `json:"max_iter" toml:"max_iter"`

	// Tolerance is the absolute objective improvement below which an
	// iteration counts as stalled.
	Tolerance float64 `json:"tolerance" toml:"tolerance"`

	// ConvergenceWindow is how many consecutive stalled iterations end the run.
	ConvergenceWindow int `json:"convergence_window" toml:"convergence_window"`

	// SimplexSize is the edge length of the initial simplex.
	SimplexSize float64 `json:"simplex_size" toml:"simplex_size"`
}

// FitConfig is the immutable input to a fit run. It is resolved once and
// passed by value to the model and the fit driver.
type FitConfig struct {
	Base         BaseParams       `json:"base_params" toml:"base_params"`
	Fixed        FixedExponents   `json:"fixed_exponents" toml:"fixed_exponents"`
	Targets      Targets          `json:"targets" toml:"targets"`
	InitialGuess FreeParams       `json:"initial_guess" toml:"initial_guess"`
	Minimizer    MinimizerOptions `json:"fit" toml:"fit"`
}

// DefaultFitConfig returns the compiled-in configuration.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		Base:         DefaultBaseParams(),
		Fixed:        DefaultFixedExponents(),
		Targets:      DefaultTargets(),
		InitialGuess: DefaultInitialGuess(),
		Minimizer: MinimizerOptions{
			MaxIterations:     DefaultMaxIterations,
			Tolerance:         DefaultTolerance,
			ConvergenceWindow: DefaultConvergenceWindow,
			SimplexSize:       DefaultSimplexSize,
		},
	}
}

// Validate checks that every value is present, finite and in range.
// Domain checks on the model algebra happen at evaluation time.
func (c FitConfig) Validate() error {
	if !allFinite(c.Base.Slice()) {
		return fmt.Errorf("%w: base params must be finite", ErrInvalidInput)
	}
	if c.Base.Length == 0 || c.Base.Time == 0 || c.Base.Entropy == 0 || c.Base.EntropyRadius == 0 {
		return fmt.Errorf("%w: l0, t0, S0 and r0 must be non-zero", ErrInvalidInput)
	}
	if !allFinite(c.Fixed[:]) {
		return fmt.Errorf("%w: fixed exponents must be finite", ErrInvalidInput)
	}
	if !allFinite(c.InitialGuess[:]) {
		return fmt.Errorf("%w: initial guess must be finite", ErrInvalidInput)
	}
	for _, name := range AllConstants() {
		v, ok := c.Targets[name]
		if !ok {
			return fmt.Errorf("%w: missing target %q", ErrInvalidInput, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: target %q must be positive and finite, got %g", ErrInvalidInput, name, v)
		}
	}
	for name := range c.Targets {
		if !name.IsValid() {
			return fmt.Errorf("%w: unknown target %q", ErrInvalidInput, name)
		}
	}
	if c.Minimizer.MaxIterations <= 0 {
		return fmt.Errorf("%w: max_iter must be positive, got %d", ErrInvalidInput, c.Minimizer.MaxIterations)
	}
	if math.IsNaN(c.Minimizer.Tolerance) || c.Minimizer.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must be non-negative, got %g", ErrInvalidInput, c.Minimizer.Tolerance)
	}
	if c.Minimizer.ConvergenceWindow < 0 {
		return fmt.Errorf("%w: convergence_window must be non-negative, got %d",
			ErrInvalidInput, c.Minimizer.ConvergenceWindow)
	}
	if math.IsNaN(c.Minimizer.SimplexSize) || c.Minimizer.SimplexSize < 0 {
		return fmt.Errorf("%w: simplex_size must be non-negative, got %g", ErrInvalidInput, c.Minimizer.SimplexSize)
	}
	return nil
}
