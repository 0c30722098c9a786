package domain

import (
	"fmt"
	"math"
)

// NumFixedExponents is the number of exponents held constant during a fit.
const NumFixedExponents = 5

// NumFreeParams is the number of exponents the minimizer varies.
const NumFreeParams = 4

// BaseParams holds the five postulated scale parameters.
type BaseParams struct {
	// Length is the base length scale l₀, in metres.
	Length float64 `json:"length" toml:"length"`

	// Time is the base time scale t₀, in seconds.
	Time float64 `json:"time" toml:"time"`

	// Entropy is the dimensionless entropy scale S₀.
	Entropy float64 `json:"entropy" toml:"entropy"`

	// EntropyRadius is the dimensionless entropy radius r₀.
	EntropyRadius float64 `json:"entropy_radius" toml:"entropy_radius"`

	// FieldAmplitude is the dimensionless attentional field amplitude η₀.
	FieldAmplitude float64 `json:"field_amplitude" toml:"field_amplitude"`
}

// DefaultBaseParams returns the postulated values.
func DefaultBaseParams() BaseParams {
	return BaseParams{
		Length:         9.676e-35,
		Time:           3.227e-43,
		Entropy:        9.999e+05,
		EntropyRadius:  99.790,
		FieldAmplitude: 1824.938,
	}
}

// Slice returns the parameters in postulate order (l₀, t₀, S₀, r₀, η₀).
func (b BaseParams) Slice() []float64 {
	return []float64{b.Length, b.Time, b.Entropy, b.EntropyRadius, b.FieldAmplitude}
}

// BaseParamsFromSlice builds BaseParams from a 5-element slice in postulate order.
func BaseParamsFromSlice(v []float64) (BaseParams, error) {
	if len(v) != 5 {
		return BaseParams{}, fmt.Errorf("%w: base params need 5 values, got %d", ErrInvalidInput, len(v))
	}
	return BaseParams{
		Length:         v[0],
		Time:           v[1],
		Entropy:        v[2],
		EntropyRadius:  v[3],
		FieldAmplitude: v[4],
	}, nil
}

// FixedExponents holds p1..p5, scaling c, ℏ, G, α and Λ.
type FixedExponents [NumFixedExponents]float64

// DefaultFixedExponents returns the exponents fitted in an earlier run.
func DefaultFixedExponents() FixedExponents {
	return FixedExponents{-0.0001, 3.1364, 12.8849, -4.6612, -133.3322}
}

// FixedExponentsFromSlice builds FixedExponents from a 5-element slice.
func FixedExponentsFromSlice(v []float64) (FixedExponents, error) {
	var out FixedExponents
	if len(v) != NumFixedExponents {
		return out, fmt.Errorf("%w: fixed exponents need %d values, got %d",
			ErrInvalidInput, NumFixedExponents, len(v))
	}
	copy(out[:], v)
	return out, nil
}

// FreeParams holds p6..p9, scaling mₑ, αₛ, mₚ and e. Order is significant.
type FreeParams [NumFreeParams]float64

// DefaultInitialGuess returns the documented minimizer starting point.
func DefaultInitialGuess() FreeParams {
	return FreeParams{-21.6, 0.9, 3.0, 0.0}
}

// FreeParamsFromSlice builds FreeParams from a 4-element slice.
func FreeParamsFromSlice(v []float64) (FreeParams, error) {
	var out FreeParams
	if len(v) != NumFreeParams {
		return out, fmt.Errorf("%w: free parameter vector needs %d values, got %d",
			ErrInvalidInput, NumFreeParams, len(v))
	}
	copy(out[:], v)
	return out, nil
}

// Slice returns a fresh slice copy.
func (p FreeParams) Slice() []float64 {
	out := make([]float64, NumFreeParams)
	copy(out, p[:])
	return out
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
