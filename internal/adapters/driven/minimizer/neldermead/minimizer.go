package neldermead

import (
	"context"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/optimize"

	"github.com/custodia-labs/rotfit/internal/core/domain"
	"github.com/custodia-labs/rotfit/internal/core/ports/driven"
)

// Ensure Minimizer implements the interface.
var _ driven.Minimizer = (*Minimizer)(nil)

// defaultProgressInterval is how many major iterations pass between
// progress log lines.
const defaultProgressInterval = 1000

// Minimizer runs gonum's Nelder-Mead.
type Minimizer struct {
	progressInterval int
}

// Option configures a Minimizer.
type Option func(*Minimizer)

// WithProgressInterval sets how many iterations pass between progress
// log lines. Zero disables progress logging.
func WithProgressInterval(n int) Option {
	return func(m *Minimizer) {
		m.progressInterval = n
	}
}

// New creates a Nelder-Mead minimizer.
func New(opts ...Option) *Minimizer {
	m := &Minimizer{progressInterval: defaultProgressInterval}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Minimize searches for a minimum of objective from initial.
//
// The run ends when the best value has not improved by more than
// opts.Tolerance for opts.ConvergenceWindow consecutive iterations, or when
// opts.MaxIterations is reached. An objective error or a cancelled context
// stops the run at the next evaluation and is returned.
func (m *Minimizer) Minimize(
	ctx context.Context,
	objective driven.Objective,
	initial []float64,
	opts domain.MinimizerOptions,
) (*domain.OptimizationResult, error) {
	if objective == nil {
		return nil, fmt.Errorf("%w: nil objective", domain.ErrInvalidInput)
	}
	if len(initial) == 0 {
		return nil, fmt.Errorf("%w: empty initial point", domain.ErrInvalidInput)
	}

	guard := &evalGuard{ctx: ctx}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			f, err := objective(x)
			if err != nil {
				guard.fail(err)
				return math.NaN()
			}
			return f
		},
		Status: guard.status,
	}

	settings := &optimize.Settings{
		MajorIterations: opts.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   opts.Tolerance,
			Iterations: opts.ConvergenceWindow,
		},
	}
	if m.progressInterval > 0 {
		settings.Recorder = newProgressRecorder(m.progressInterval)
	}

	method := &optimize.NelderMead{SimplexSize: opts.SimplexSize}

	res, err := optimize.Minimize(problem, initial, settings, method)
	if cause := guard.err(); cause != nil {
		return nil, cause
	}
	if err != nil {
		status := "error"
		f := math.NaN()
		if res != nil {
			status = res.Status.String()
			f = res.F
		}
		return nil, &domain.NonConvergenceError{Status: status, Objective: f, Err: err}
	}
	if res == nil {
		return nil, &domain.NonConvergenceError{Status: "no result", Objective: math.NaN()}
	}

	x := make([]float64, len(res.X))
	copy(x, res.X)

	return &domain.OptimizationResult{
		X:           x,
		F:           res.F,
		Iterations:  res.MajorIterations,
		Evaluations: res.FuncEvaluations,
		Status:      mapStatus(res.Status),
		RawStatus:   res.Status.String(),
		Runtime:     res.Runtime,
	}, nil
}

// mapStatus classifies a gonum status.
func mapStatus(s optimize.Status) domain.TerminationStatus {
	switch s {
	case optimize.Success, optimize.FunctionConvergence, optimize.FunctionThreshold,
		optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return domain.StatusConverged
	case optimize.IterationLimit:
		return domain.StatusIterationLimit
	case optimize.FunctionEvaluationLimit, optimize.RuntimeLimit:
		return domain.StatusEvaluationLimit
	default:
		return domain.StatusFailed
	}
}

// evalGuard records the first objective error and reports it, or context
// cancellation, through the Problem.Status hook that gonum checks after
// every evaluation.
type evalGuard struct {
	ctx context.Context

	mu    sync.Mutex
	cause error
}

func (g *evalGuard) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cause == nil {
		g.cause = err
	}
}

func (g *evalGuard) err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cause
}

func (g *evalGuard) status() (optimize.Status, error) {
	if cause := g.err(); cause != nil {
		return optimize.Failure, cause
	}
	if g.ctx != nil {
		if err := g.ctx.Err(); err != nil {
			g.fail(err)
			return optimize.Failure, err
		}
	}
	return optimize.NotTerminated, nil
}
