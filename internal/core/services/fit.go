package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/custodia-labs/rotfit/internal/core/domain"
	"github.com/custodia-labs/rotfit/internal/core/ports/driven"
	"github.com/custodia-labs/rotfit/internal/core/ports/driving"
	"github.com/custodia-labs/rotfit/internal/logger"
)

// Ensure FitService implements the interface.
var _ driving.FitService = (*FitService)(nil)

// FitService drives the minimizer over the model's log-ratio objective.
type FitService struct {
	minimizer driven.Minimizer
}

// NewFitService creates a new fit service.
func NewFitService(minimizer driven.Minimizer) *FitService {
	return &FitService{minimizer: minimizer}
}

// Objective returns the sum of squared log10 ratios at free.
func (s *FitService) Objective(cfg domain.FitConfig, free domain.FreeParams) (float64, error) {
	return NewModel(cfg.Base, cfg.Fixed).Objective(cfg.Targets, free)
}

// Evaluate computes the report at free without running the minimizer.
func (s *FitService) Evaluate(cfg domain.FitConfig, free domain.FreeParams) (*domain.FitReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return buildReport(NewModel(cfg.Base, cfg.Fixed), cfg, free)
}

// Run fits p6..p9 and returns the report at the optimum.
//
// Reaching the iteration cap is not an error: the result is returned with
// Converged=false. A DomainError from the model, a failed minimizer status,
// or a non-finite final objective aborts the run.
func (s *FitService) Run(ctx context.Context, cfg domain.FitConfig) (*domain.FitReport, error) {
	if s.minimizer == nil {
		return nil, errors.New("minimizer not configured")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model := NewModel(cfg.Base, cfg.Fixed)

	logger.Section("Fit")
	logger.Debug("Initial guess: %s", describeParams(cfg.InitialGuess))
	logger.Debug("Max iterations: %d, tolerance: %g, window: %d",
		cfg.Minimizer.MaxIterations, cfg.Minimizer.Tolerance, cfg.Minimizer.ConvergenceWindow)

	initial, err := model.Objective(cfg.Targets, cfg.InitialGuess)
	if err != nil {
		return nil, fmt.Errorf("objective at initial guess: %w", err)
	}
	logger.Debug("Initial objective: %.6e", initial)

	objective := func(x []float64) (float64, error) {
		free, err := domain.FreeParamsFromSlice(x)
		if err != nil {
			return 0, err
		}
		return model.Objective(cfg.Targets, free)
	}

	res, err := s.minimizer.Minimize(ctx, objective, cfg.InitialGuess.Slice(), cfg.Minimizer)
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) || errors.Is(err, domain.ErrNonConvergence) || ctx.Err() != nil {
			return nil, err
		}
		return nil, &domain.NonConvergenceError{Status: "error", Objective: math.NaN(), Err: err}
	}
	if res == nil {
		return nil, &domain.NonConvergenceError{Status: "no result", Objective: math.NaN()}
	}

	logger.Info("Minimizer stopped: %s (%s) after %d iterations, %d evaluations",
		res.Status.Description(), res.RawStatus, res.Iterations, res.Evaluations)

	if !res.Status.IsSuccess() {
		return nil, &domain.NonConvergenceError{Status: res.RawStatus, Objective: res.F}
	}
	if math.IsNaN(res.F) || math.IsInf(res.F, 0) {
		return nil, &domain.NonConvergenceError{Status: res.RawStatus, Objective: res.F}
	}
	if res.Status != domain.StatusConverged {
		logger.Warn("Fit ended without convergence: %s", res.Status.Description())
	}

	free, err := domain.FreeParamsFromSlice(res.X)
	if err != nil {
		return nil, &domain.NonConvergenceError{Status: res.RawStatus, Objective: res.F, Err: err}
	}

	report, err := buildReport(model, cfg, free)
	if err != nil {
		return nil, fmt.Errorf("evaluate optimum: %w", err)
	}
	report.Result = &domain.FitResult{
		Params:           free,
		Objective:        res.F,
		InitialObjective: initial,
		Iterations:       res.Iterations,
		Evaluations:      res.Evaluations,
		Status:           res.Status,
		RawStatus:        res.RawStatus,
		Converged:        res.Status == domain.StatusConverged,
		Runtime:          res.Runtime,
	}

	logger.Info("Objective: %.3e -> %.3e", initial, res.F)
	logger.Debug("Optimum: %s", describeParams(free))

	return report, nil
}

// buildReport evaluates the model at free and assembles the comparison rows.
func buildReport(model Model, cfg domain.FitConfig, free domain.FreeParams) (*domain.FitReport, error) {
	kappa0, err := model.Kappa0()
	if err != nil {
		return nil, err
	}
	derived, err := model.Evaluate(free)
	if err != nil {
		return nil, err
	}
	objective, err := residualSumOfSquares(derived, cfg.Targets)
	if err != nil {
		return nil, err
	}
	return &domain.FitReport{
		Config:      cfg,
		Params:      free,
		Objective:   objective,
		Kappa0:      kappa0,
		Derived:     derived,
		Comparisons: domain.Compare(derived, cfg.Targets),
	}, nil
}
