// Package domain defines the core value types for rotfit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - BaseParams: The five postulated scale parameters
//   - FixedExponents, FreeParams: Power-of-ten correction exponents
//   - Targets, Derived: Observed and predicted physical constants
//   - FitConfig: Everything a fit run needs, resolved once at startup
//   - FitResult, FitReport: The outcome of a run, consumed by reporting
//
// All types are plain values. Nothing here is mutated after construction.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
