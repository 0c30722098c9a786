// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Minimizer: Derivative-free minimization (gonum Nelder-Mead)
//   - ConfigStore: Application configuration (TOML file or in-memory)
//   - ConfigWatcher: Change notification for the configuration file
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
