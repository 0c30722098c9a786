package domain

// ConstantName identifies one of the nine derived physical constants.
type ConstantName string

// The nine constants, keyed the way targets are written in configuration.
const (
	// ConstantC is the speed of light.
	ConstantC ConstantName = "c"

	// ConstantHbar is the reduced Planck constant.
	ConstantHbar ConstantName = "hbar"

	// ConstantG is the gravitational constant.
	ConstantG ConstantName = "G"

	// ConstantAlpha is the fine-structure constant.
	ConstantAlpha ConstantName = "alpha"

	// ConstantLambda is the cosmological constant.
	ConstantLambda ConstantName = "Lambda"

	// ConstantElectronMass is the electron mass.
	ConstantElectronMass ConstantName = "m_e"

	// ConstantStrongCoupling is the strong coupling constant.
	ConstantStrongCoupling ConstantName = "alpha_s"

	// ConstantProtonMass is the proton mass.
	ConstantProtonMass ConstantName = "m_p"

	// ConstantCharge is the elementary charge.
	ConstantCharge ConstantName = "e"
)

// AllConstants returns every constant in report order.
func AllConstants() []ConstantName {
	return []ConstantName{
		ConstantC,
		ConstantHbar,
		ConstantG,
		ConstantAlpha,
		ConstantLambda,
		ConstantElectronMass,
		ConstantStrongCoupling,
		ConstantProtonMass,
		ConstantCharge,
	}
}

// FittedConstants returns the constants that feed the objective, in the
// order of the free parameters that scale them (p6..p9).
func FittedConstants() []ConstantName {
	return []ConstantName{
		ConstantElectronMass,
		ConstantStrongCoupling,
		ConstantProtonMass,
		ConstantCharge,
	}
}

// IsValid returns true if the constant name is recognised.
func (n ConstantName) IsValid() bool {
	switch n {
	case ConstantC, ConstantHbar, ConstantG, ConstantAlpha, ConstantLambda,
		ConstantElectronMass, ConstantStrongCoupling, ConstantProtonMass, ConstantCharge:
		return true
	default:
		return false
	}
}

// IsFitted returns true if the constant depends on a free parameter.
func (n ConstantName) IsFitted() bool {
	switch n {
	case ConstantElectronMass, ConstantStrongCoupling, ConstantProtonMass, ConstantCharge:
		return true
	default:
		return false
	}
}

// String returns the configuration key.
func (n ConstantName) String() string {
	return string(n)
}

// Symbol returns the display symbol used in reports.
func (n ConstantName) Symbol() string {
	switch n {
	case ConstantC:
		return "c"
	case ConstantHbar:
		return "ℏ"
	case ConstantG:
		return "G"
	case ConstantAlpha:
		return "α"
	case ConstantLambda:
		return "Λ"
	case ConstantElectronMass:
		return "mₑ"
	case ConstantStrongCoupling:
		return "αₛ"
	case ConstantProtonMass:
		return "mₚ"
	case ConstantCharge:
		return "e"
	default:
		return string(n)
	}
}

// Targets maps each constant to its observed reference value.
type Targets map[ConstantName]float64

// Derived maps each constant to its model prediction.
type Derived map[ConstantName]float64

// DefaultTargets returns the CODATA-style reference values.
func DefaultTargets() Targets {
	return Targets{
		ConstantC:              2.99792458e8,
		ConstantHbar:           1.054571817e-34,
		ConstantG:              6.67430e-11,
		ConstantAlpha:          7.2973525693e-3,
		ConstantLambda:         1.1056e-52,
		ConstantElectronMass:   9.1093837015e-31,
		ConstantStrongCoupling: 0.1181,
		ConstantProtonMass:     1.67262192369e-27,
		ConstantCharge:         1.602176634e-19,
	}
}

// Clone returns an independent copy.
func (t Targets) Clone() Targets {
	out := make(Targets, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
