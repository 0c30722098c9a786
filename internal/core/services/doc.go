// Package services implements the driving port interfaces.
// Services contain the core numeric logic and orchestrate
// calls to driven ports (adapters).
//
//   - Model: closed-form evaluation of the nine derived constants
//   - FitService: log-ratio objective, minimizer invocation, result extraction
//   - ConfigService: resolves FitConfig from a ConfigStore
//
// Services are pure Go with no CGO or external dependencies.
package services
