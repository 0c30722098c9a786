package neldermead

import (
	"gonum.org/v1/gonum/optimize"

	"github.com/custodia-labs/rotfit/internal/logger"
)

// progressRecorder logs the best objective value every interval major
// iterations, and once more when the run ends.
type progressRecorder struct {
	interval int
}

func newProgressRecorder(interval int) *progressRecorder {
	return &progressRecorder{interval: interval}
}

// Init implements optimize.Recorder.
func (r *progressRecorder) Init() error {
	return nil
}

// Record implements optimize.Recorder.
func (r *progressRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	switch op {
	case optimize.InitIteration:
		logger.Debug("Nelder-Mead: starting")
	case optimize.MajorIteration:
		if r.interval > 0 && stats.MajorIterations%r.interval == 0 {
			logger.Debug("Nelder-Mead: iteration %d, evaluations %d, f=%.6e",
				stats.MajorIterations, stats.FuncEvaluations, loc.F)
		}
	case optimize.PostIteration:
		logger.Debug("Nelder-Mead: finished after %d iterations, %d evaluations, f=%.6e (%s)",
			stats.MajorIterations, stats.FuncEvaluations, loc.F, stats.Runtime)
	}
	return nil
}
