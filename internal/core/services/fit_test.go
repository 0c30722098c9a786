package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rotfit/internal/core/domain"
	"github.com/custodia-labs/rotfit/internal/core/ports/driven"
)

// mockMinimizer returns a canned result and records how it was called.
type mockMinimizer struct {
	result *domain.OptimizationResult
	err    error

	calls   int
	initial []float64
	opts    domain.MinimizerOptions
	probe   float64
}

func (m *mockMinimizer) Minimize(
	_ context.Context,
	objective driven.Objective,
	initial []float64,
	opts domain.MinimizerOptions,
) (*domain.OptimizationResult, error) {
	m.calls++
	m.initial = initial
	m.opts = opts
	if f, err := objective(initial); err == nil {
		m.probe = f
	}
	return m.result, m.err
}

func resultAt(x domain.FreeParams, status domain.TerminationStatus) *domain.OptimizationResult {
	return &domain.OptimizationResult{
		X:           x.Slice(),
		F:           0.5,
		Iterations:  10,
		Evaluations: 20,
		Status:      status,
		RawStatus:   "Mock",
	}
}

func TestFitService_Run_PassesConfigToMinimizer(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	mock := &mockMinimizer{result: resultAt(cfg.InitialGuess, domain.StatusConverged)}

	report, err := NewFitService(mock).Run(context.Background(), cfg)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, cfg.InitialGuess.Slice(), mock.initial)
	assert.Equal(t, cfg.Minimizer, mock.opts)
	assert.InEpsilon(t, expectedInitialObjective, mock.probe, 1e-6)
}

func TestFitService_Run_BuildsReport(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	x := domain.FreeParams{-21.6, 0.89, 3.26, -5.5}
	mock := &mockMinimizer{result: resultAt(x, domain.StatusConverged)}

	report, err := NewFitService(mock).Run(context.Background(), cfg)

	require.NoError(t, err)
	require.NotNil(t, report.Result)
	assert.Equal(t, x, report.Params)
	assert.Equal(t, x, report.Result.Params)
	assert.Equal(t, 0.5, report.Result.Objective)
	assert.InEpsilon(t, expectedInitialObjective, report.Result.InitialObjective, 1e-6)
	assert.Equal(t, 10, report.Result.Iterations)
	assert.Equal(t, 20, report.Result.Evaluations)
	assert.True(t, report.Result.Converged)
	assert.Equal(t, "Mock", report.Result.RawStatus)
	assert.InEpsilon(t, expectedKappa0, report.Kappa0, 1e-12)
	assert.Len(t, report.Comparisons, len(domain.AllConstants()))
	assert.Empty(t, report.RunID)
}

func TestFitService_Run_IterationLimitIsNotFatal(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	mock := &mockMinimizer{result: resultAt(cfg.InitialGuess, domain.StatusIterationLimit)}

	report, err := NewFitService(mock).Run(context.Background(), cfg)

	require.NoError(t, err)
	assert.False(t, report.Result.Converged)
	assert.Equal(t, domain.StatusIterationLimit, report.Result.Status)
}

func TestFitService_Run_FailedStatus(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	res := resultAt(cfg.InitialGuess, domain.StatusFailed)
	res.RawStatus = "Failure"
	mock := &mockMinimizer{result: res}

	report, err := NewFitService(mock).Run(context.Background(), cfg)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrNonConvergence)
	var nce *domain.NonConvergenceError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, "Failure", nce.Status)
}

func TestFitService_Run_NonFiniteObjective(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	res := resultAt(cfg.InitialGuess, domain.StatusConverged)
	res.F = math.NaN()
	mock := &mockMinimizer{result: res}

	_, err := NewFitService(mock).Run(context.Background(), cfg)

	assert.ErrorIs(t, err, domain.ErrNonConvergence)
}

func TestFitService_Run_DomainErrorPropagatesUnchanged(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	domainErr := &domain.DomainError{Quantity: "e", Reason: "square root of negative value", Value: -1}
	mock := &mockMinimizer{err: domainErr}

	_, err := NewFitService(mock).Run(context.Background(), cfg)

	var de *domain.DomainError
	require.True(t, errors.As(err, &de))
	assert.Same(t, domainErr, de)
	assert.False(t, errors.Is(err, domain.ErrNonConvergence))
}

func TestFitService_Run_OtherMinimizerErrorsAreNonConvergence(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	cause := errors.New("boom")
	mock := &mockMinimizer{err: cause}

	_, err := NewFitService(mock).Run(context.Background(), cfg)

	assert.ErrorIs(t, err, domain.ErrNonConvergence)
	assert.ErrorIs(t, err, cause)
}

func TestFitService_Run_WrongLengthResult(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	res := resultAt(cfg.InitialGuess, domain.StatusConverged)
	res.X = res.X[:3]
	mock := &mockMinimizer{result: res}

	_, err := NewFitService(mock).Run(context.Background(), cfg)

	assert.ErrorIs(t, err, domain.ErrNonConvergence)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFitService_Run_NilResult(t *testing.T) {
	mock := &mockMinimizer{}

	_, err := NewFitService(mock).Run(context.Background(), domain.DefaultFitConfig())

	assert.ErrorIs(t, err, domain.ErrNonConvergence)
}

func TestFitService_Run_DomainErrorAtInitialGuessFailsFast(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	cfg.Base.Entropy = -cfg.Base.Entropy
	mock := &mockMinimizer{}

	_, err := NewFitService(mock).Run(context.Background(), cfg)

	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Equal(t, 0, mock.calls)
}

func TestFitService_Run_InvalidConfig(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	cfg.Minimizer.MaxIterations = 0
	mock := &mockMinimizer{}

	_, err := NewFitService(mock).Run(context.Background(), cfg)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, mock.calls)
}

func TestFitService_Run_NoMinimizer(t *testing.T) {
	_, err := NewFitService(nil).Run(context.Background(), domain.DefaultFitConfig())

	assert.Error(t, err)
}

func TestFitService_Objective(t *testing.T) {
	cfg := domain.DefaultFitConfig()

	f, err := NewFitService(nil).Objective(cfg, cfg.InitialGuess)

	require.NoError(t, err)
	assert.InEpsilon(t, expectedInitialObjective, f, 1e-6)
}

func TestFitService_Evaluate(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	free := domain.FreeParams{-21.6, 0.9, 3.2, -5.5}

	report, err := NewFitService(nil).Evaluate(cfg, free)

	require.NoError(t, err)
	assert.Nil(t, report.Result)
	assert.Equal(t, free, report.Params)
	assert.Len(t, report.Derived, len(domain.AllConstants()))

	f, err := NewFitService(nil).Objective(cfg, free)
	require.NoError(t, err)
	assert.Equal(t, f, report.Objective)

	me, ok := report.ComparisonFor(domain.ConstantElectronMass)
	require.True(t, ok)
	assert.True(t, me.Fitted)
	assert.Equal(t, report.Derived[domain.ConstantElectronMass], me.Predicted)
	assert.Equal(t, cfg.Targets[domain.ConstantElectronMass], me.Observed)
}

func TestFitService_Evaluate_InvalidConfig(t *testing.T) {
	cfg := domain.DefaultFitConfig()
	delete(cfg.Targets, domain.ConstantCharge)

	_, err := NewFitService(nil).Evaluate(cfg, cfg.InitialGuess)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
