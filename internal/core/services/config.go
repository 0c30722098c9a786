package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/rotfit/internal/core/domain"
	"github.com/custodia-labs/rotfit/internal/core/ports/driven"
	"github.com/custodia-labs/rotfit/internal/core/ports/driving"
	"github.com/custodia-labs/rotfit/internal/logger"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// Config keys for fit configuration storage.
const (
	keyBaseParams        = "model.base_params"
	keyFixedExponents    = "model.fixed_exponents"
	keyTargetsPrefix     = "targets."
	keyInitialGuess      = "fit.initial_guess"
	keyMaxIter           = "fit.max_iter"
	keyTolerance         = "fit.tolerance"
	keyConvergenceWindow = "fit.convergence_window"
	keySimplexSize       = "fit.simplex_size"
)

// ConfigService resolves a FitConfig from a ConfigStore.
// Keys the store does not set take their compiled-in default; keys that are
// set but malformed are an error.
type ConfigService struct {
	configStore driven.ConfigStore
}

// NewConfigService creates a new config service.
func NewConfigService(configStore driven.ConfigStore) *ConfigService {
	return &ConfigService{configStore: configStore}
}

// Path returns the backing store path.
func (s *ConfigService) Path() string {
	return s.configStore.Path()
}

// Load re-reads the store and returns the validated config.
func (s *ConfigService) Load() (domain.FitConfig, error) {
	if err := s.configStore.Load(); err != nil {
		return domain.FitConfig{}, fmt.Errorf("load config: %w", err)
	}

	cfg := domain.DefaultFitConfig()

	if v, ok, err := s.floatSlice(keyBaseParams); err != nil {
		return domain.FitConfig{}, err
	} else if ok {
		base, err := domain.BaseParamsFromSlice(v)
		if err != nil {
			return domain.FitConfig{}, fmt.Errorf("%s: %w", keyBaseParams, err)
		}
		cfg.Base = base
	}

	if v, ok, err := s.floatSlice(keyFixedExponents); err != nil {
		return domain.FitConfig{}, err
	} else if ok {
		fixed, err := domain.FixedExponentsFromSlice(v)
		if err != nil {
			return domain.FitConfig{}, fmt.Errorf("%s: %w", keyFixedExponents, err)
		}
		cfg.Fixed = fixed
	}

	for _, name := range domain.AllConstants() {
		key := keyTargetsPrefix + name.String()
		if v, ok, err := s.float(key); err != nil {
			return domain.FitConfig{}, err
		} else if ok {
			cfg.Targets[name] = v
		}
	}

	if v, ok, err := s.floatSlice(keyInitialGuess); err != nil {
		return domain.FitConfig{}, err
	} else if ok {
		guess, err := domain.FreeParamsFromSlice(v)
		if err != nil {
			return domain.FitConfig{}, fmt.Errorf("%s: %w", keyInitialGuess, err)
		}
		cfg.InitialGuess = guess
	}

	if v, ok, err := s.integer(keyMaxIter); err != nil {
		return domain.FitConfig{}, err
	} else if ok {
		cfg.Minimizer.MaxIterations = v
	}

	if v, ok, err := s.float(keyTolerance); err != nil {
		return domain.FitConfig{}, err
	} else if ok {
		cfg.Minimizer.Tolerance = v
	}

	if v, ok, err := s.integer(keyConvergenceWindow); err != nil {
		return domain.FitConfig{}, err
	} else if ok {
		cfg.Minimizer.ConvergenceWindow = v
	}

	if v, ok, err := s.float(keySimplexSize); err != nil {
		return domain.FitConfig{}, err
	} else if ok {
		cfg.Minimizer.SimplexSize = v
	}

	if err := cfg.Validate(); err != nil {
		return domain.FitConfig{}, err
	}

	if path := s.configStore.Path(); path != "" {
		logger.Debug("Loaded config from %s", path)
	}
	return cfg, nil
}

// Save persists every key of cfg.
func (s *ConfigService) Save(cfg domain.FitConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyBaseParams, cfg.Base.Slice()); err != nil {
		return fmt.Errorf("save base params: %w", err)
	}
	if err := s.configStore.Set(keyFixedExponents, append([]float64(nil), cfg.Fixed[:]...)); err != nil {
		return fmt.Errorf("save fixed exponents: %w", err)
	}
	for _, name := range domain.AllConstants() {
		if err := s.configStore.Set(keyTargetsPrefix+name.String(), cfg.Targets[name]); err != nil {
			return fmt.Errorf("save target %s: %w", name, err)
		}
	}
	if err := s.configStore.Set(keyInitialGuess, cfg.InitialGuess.Slice()); err != nil {
		return fmt.Errorf("save initial guess: %w", err)
	}
	if err := s.configStore.Set(keyMaxIter, cfg.Minimizer.MaxIterations); err != nil {
		return fmt.Errorf("save max_iter: %w", err)
	}
	if err := s.configStore.Set(keyTolerance, cfg.Minimizer.Tolerance); err != nil {
		return fmt.Errorf("save tolerance: %w", err)
	}
	if err := s.configStore.Set(keyConvergenceWindow, cfg.Minimizer.ConvergenceWindow); err != nil {
		return fmt.Errorf("save convergence_window: %w", err)
	}
	if err := s.configStore.Set(keySimplexSize, cfg.Minimizer.SimplexSize); err != nil {
		return fmt.Errorf("save simplex_size: %w", err)
	}
	return nil
}

func (s *ConfigService) float(key string) (float64, bool, error) {
	if _, ok := s.configStore.Get(key); !ok {
		return 0, false, nil
	}
	v, ok := s.configStore.GetFloat(key)
	if !ok {
		return 0, false, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
	}
	return v, true, nil
}

func (s *ConfigService) integer(key string) (int, bool, error) {
	v, ok, err := s.float(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%w: %s must be an integer, got %g", domain.ErrInvalidInput, key, v)
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false, fmt.Errorf("%w: %s is out of range, got %g", domain.ErrInvalidInput, key, v)
	}
	return int(v), true, nil
}

func (s *ConfigService) floatSlice(key string) ([]float64, bool, error) {
	if _, ok := s.configStore.Get(key); !ok {
		return nil, false, nil
	}
	v, ok := s.configStore.GetFloatSlice(key)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s must be a list of numbers", domain.ErrInvalidInput, key)
	}
	return v, true, nil
}
