package services

import (
	"fmt"
	"math"

	"github.com/custodia-labs/rotfit/internal/core/domain"
)

// Model evaluates the closed-form relations that map the base parameters
// and exponents to the nine derived constants. A Model is immutable and
// every method is a pure function of its inputs.
type Model struct {
	base  domain.BaseParams
	fixed domain.FixedExponents
}

// NewModel creates a model for fixed base parameters and exponents.
func NewModel(base domain.BaseParams, fixed domain.FixedExponents) Model {
	return Model{base: base, fixed: fixed}
}

// Kappa0 returns the density-like scale S₀ / ((4/3)·π·l₀³).
// It fails if the result is not strictly positive, since ln(κ₀) enters Λ.
func (m Model) Kappa0() (float64, error) {
	l0 := m.base.Length
	k := m.base.Entropy / ((4.0 / 3.0) * math.Pi * l0 * l0 * l0)
	if err := checkPositive("kappa0", k); err != nil {
		return 0, err
	}
	return k, nil
}

// Evaluate computes all nine derived constants at the free exponents.
func (m Model) Evaluate(free domain.FreeParams) (domain.Derived, error) {
	kappa0, err := m.Kappa0()
	if err != nil {
		return nil, err
	}

	l0, t0, s0 := m.base.Length, m.base.Time, m.base.Entropy
	ratio := m.base.FieldAmplitude / m.base.EntropyRadius
	p1, p2, p3, p4, p5 := m.fixed[0], m.fixed[1], m.fixed[2], m.fixed[3], m.fixed[4]
	p6, p7, p8, p9 := free[0], free[1], free[2], free[3]

	l3 := l0 * l0 * l0

	c := l0 / t0 * pow10(p1)
	hbar := kappa0 * l3 * t0 * pow10(p2)
	g := l3 / (s0 * t0 * t0) * pow10(p3)
	alpha := ratio * ratio * pow10(p4)
	lambda := 1 / s0 / (t0 * t0) * math.Log(kappa0) * pow10(p5)
	me := hbar / (l0 * c) * pow10(p6)

	quarter, err := checkedPow("alpha_s", ratio, 0.25)
	if err != nil {
		return nil, err
	}
	alphaS := alpha * quarter * pow10(p7)
	mp := me * pow10(p8)

	root, err := checkedSqrt("e", 4*math.Pi*hbar*c*alpha)
	if err != nil {
		return nil, err
	}
	e := root * pow10(p9)

	derived := domain.Derived{
		domain.ConstantC:              c,
		domain.ConstantHbar:           hbar,
		domain.ConstantG:              g,
		domain.ConstantAlpha:          alpha,
		domain.ConstantLambda:         lambda,
		domain.ConstantElectronMass:   me,
		domain.ConstantStrongCoupling: alphaS,
		domain.ConstantProtonMass:     mp,
		domain.ConstantCharge:         e,
	}
	for _, name := range domain.AllConstants() {
		if err := checkFinite(name.String(), derived[name]); err != nil {
			return nil, err
		}
	}
	return derived, nil
}

// Objective returns Σ log₁₀(pred/obs)² over the fitted constants.
func (m Model) Objective(targets domain.Targets, free domain.FreeParams) (float64, error) {
	derived, err := m.Evaluate(free)
	if err != nil {
		return 0, err
	}
	return residualSumOfSquares(derived, targets)
}

func residualSumOfSquares(derived domain.Derived, targets domain.Targets) (float64, error) {
	var sum float64
	for _, name := range domain.FittedConstants() {
		r, err := logRatio(name, derived[name], targets[name])
		if err != nil {
			return 0, err
		}
		sum += r * r
	}
	return sum, nil
}

// logRatio returns log₁₀(pred/obs), failing when the ratio is outside the
// domain of the logarithm.
func logRatio(name domain.ConstantName, pred, obs float64) (float64, error) {
	if obs == 0 {
		return 0, &domain.DomainError{Quantity: name.String(), Reason: "observed value is zero", Value: obs}
	}
	ratio := pred / obs
	if math.IsNaN(ratio) || ratio <= 0 {
		return 0, &domain.DomainError{Quantity: name.String(), Reason: "log of non-positive ratio", Value: ratio}
	}
	if math.IsInf(ratio, 0) {
		return 0, &domain.DomainError{Quantity: name.String(), Reason: "non-finite ratio", Value: ratio}
	}
	return math.Log10(ratio), nil
}

func pow10(p float64) float64 {
	return math.Pow(10, p)
}

func checkPositive(quantity string, v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return &domain.DomainError{Quantity: quantity, Reason: "log of non-positive value", Value: v}
	}
	return nil
}

func checkFinite(quantity string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &domain.DomainError{Quantity: quantity, Reason: "non-finite value", Value: v}
	}
	return nil
}

func checkedSqrt(quantity string, v float64) (float64, error) {
	if math.IsNaN(v) || v < 0 {
		return 0, &domain.DomainError{Quantity: quantity, Reason: "square root of negative value", Value: v}
	}
	return math.Sqrt(v), nil
}

func checkedPow(quantity string, base, exp float64) (float64, error) {
	if math.IsNaN(base) || base < 0 {
		return 0, &domain.DomainError{Quantity: quantity, Reason: "fractional power of negative value", Value: base}
	}
	return math.Pow(base, exp), nil
}

// describeParams formats a free vector for logs.
func describeParams(p domain.FreeParams) string {
	return fmt.Sprintf("p6=%.6f p7=%.6f p8=%.6f p9=%.6f", p[0], p[1], p[2], p[3])
}
