// Package neldermead implements driven.Minimizer with the Nelder-Mead
// simplex method from gonum.org/v1/gonum/optimize.
//
// The search is derivative-free and deterministic: the initial simplex is
// built axis-aligned around the starting point and no random restarts are
// made. Objective evaluations run sequentially.
package neldermead
