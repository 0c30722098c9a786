package domain

import "time"

// TerminationStatus classifies how a minimizer run ended.
type TerminationStatus string

// Termination statuses.
const (
	// StatusConverged means a convergence criterion was satisfied.
	StatusConverged TerminationStatus = "converged"

	// StatusIterationLimit means the iteration cap was reached first.
	// The fit still succeeds but is flagged in the report.
	StatusIterationLimit TerminationStatus = "iteration_limit"

	// StatusEvaluationLimit means a function evaluation or runtime cap was reached.
	StatusEvaluationLimit TerminationStatus = "evaluation_limit"

	// StatusFailed means the minimizer reported failure.
	StatusFailed TerminationStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s TerminationStatus) IsValid() bool {
	switch s {
	case StatusConverged, StatusIterationLimit, StatusEvaluationLimit, StatusFailed:
		return true
	default:
		return false
	}
}

// IsSuccess returns true for every outcome the fit driver accepts.
// Hitting a cap is accepted; only StatusFailed is not.
func (s TerminationStatus) IsSuccess() bool {
	return s == StatusConverged || s == StatusIterationLimit || s == StatusEvaluationLimit
}

// String returns the string representation.
func (s TerminationStatus) String() string {
	return string(s)
}

// Description returns a human-readable description of the status.
func (s TerminationStatus) Description() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusIterationLimit:
		return "iteration cap reached"
	case StatusEvaluationLimit:
		return "evaluation cap reached"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OptimizationResult is what a Minimizer returns.
type OptimizationResult struct {
	// X is the best point found.
	X []float64

	// F is the objective at X.
	F float64

	// Iterations is the number of major iterations performed.
	Iterations int

	// Evaluations is the number of objective evaluations.
	Evaluations int

	// Status classifies the termination.
	Status TerminationStatus

	// RawStatus is the minimizer's own status name.
	RawStatus string

	// Runtime is the wall-clock duration of the run.
	Runtime time.Duration
}

// FitResult is the fit driver's output.
type FitResult struct {
	Params           FreeParams        `json:"params" toml:"params"`
	Objective        float64           `json:"objective" toml:"objective"`
	InitialObjective float64           `json:"initial_objective" toml:"initial_objective"`
	Iterations       int               `json:"iterations" toml:"iterations"`
	Evaluations      int               `json:"evaluations" toml:"evaluations"`
	Status           TerminationStatus `json:"status" toml:"status"`
	RawStatus        string            `json:"raw_status" toml:"raw_status"`
	Converged        bool              `json:"converged" toml:"converged"`
	Runtime          time.Duration     `json:"runtime_ns" toml:"runtime_ns"`
}
