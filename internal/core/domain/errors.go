package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent failures of the model or the fit.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrDomain indicates a transcendental function was given an argument
	// outside its domain (log of a non-positive value, square root of a
	// negative value).
	ErrDomain = errors.New("domain error")

	// ErrNonConvergence indicates the minimizer reported failure or ended
	// on a non-finite objective value.
	ErrNonConvergence = errors.New("optimization did not converge")
)

// DomainError names the quantity whose evaluation left the domain of a
// transcendental function. It matches ErrDomain with errors.Is.
type DomainError struct {
	// Quantity is the derived quantity being computed, e.g. "kappa0" or "e".
	Quantity string

	// Reason describes the violated precondition.
	Reason string

	// Value is the offending argument.
	Value float64
}

// Error implements error.
func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error computing %s: %s (got %g)", e.Quantity, e.Reason, e.Value)
}

// Unwrap returns ErrDomain.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// NonConvergenceError carries the minimizer's raw termination status.
// It matches ErrNonConvergence with errors.Is, and also matches Err when set.
type NonConvergenceError struct {
	// Status is the minimizer's raw termination status.
	Status string

	// Objective is the last objective value reported.
	Objective float64

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *NonConvergenceError) Error() string {
	msg := fmt.Sprintf("optimization did not converge: status %s, objective %g", e.Status, e.Objective)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrNonConvergence and the underlying cause.
func (e *NonConvergenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNonConvergence}
	}
	return []error{ErrNonConvergence, e.Err}
}
