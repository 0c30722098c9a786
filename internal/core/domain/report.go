package domain

// Comparison is one row of the predicted-versus-observed table.
type Comparison struct {
	Name      ConstantName `json:"name" toml:"name"`
	Predicted float64      `json:"predicted" toml:"predicted"`
	Observed  float64      `json:"observed" toml:"observed"`
	// RelError is the signed relative error (pred/obs) - 1.
	RelError float64 `json:"rel_error" toml:"rel_error"`
	Fitted   bool    `json:"fitted" toml:"fitted"`
}

// RelativeError returns (pred/obs) - 1.
func RelativeError(pred, obs float64) float64 {
	return pred/obs - 1
}

// Compare builds comparisons for every constant, in report order.
// Constants missing from either map are skipped.
func Compare(derived Derived, targets Targets) []Comparison {
	out := make([]Comparison, 0, len(AllConstants()))
	for _, name := range AllConstants() {
		pred, ok := derived[name]
		if !ok {
			continue
		}
		obs, ok := targets[name]
		if !ok {
			continue
		}
		out = append(out, Comparison{
			Name:      name,
			Predicted: pred,
			Observed:  obs,
			RelError:  RelativeError(pred, obs),
			Fitted:    name.IsFitted(),
		})
	}
	return out
}

// FitReport is everything the reporting collaborator needs from a run.
type FitReport struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id" toml:"run_id"`

	// Config is the configuration the run used.
	Config FitConfig `json:"config" toml:"config"`

	// Result is nil for pure evaluations that did not run the minimizer.
	Result *FitResult `json:"result,omitempty" toml:"result,omitempty"`

	// Params are the free exponents the derived constants were computed at.
	Params FreeParams `json:"params" toml:"params"`

	// Objective is the log-ratio objective at Params.
	Objective float64 `json:"objective" toml:"objective"`

	// Kappa0 is the intermediate density-like scale.
	Kappa0 float64 `json:"kappa0" toml:"kappa0"`

	// Derived holds all nine predictions.
	Derived Derived `json:"derived" toml:"derived"`

	// Comparisons holds one row per constant, in report order.
	Comparisons []Comparison `json:"comparisons" toml:"comparisons"`
}

// Exponents returns p1..p9.
func (r *FitReport) Exponents() []float64 {
	out := make([]float64, 0, NumFixedExponents+NumFreeParams)
	out = append(out, r.Config.Fixed[:]...)
	out = append(out, r.Params[:]...)
	return out
}

// ComparisonFor returns the row for name, if present.
func (r *FitReport) ComparisonFor(name ConstantName) (Comparison, bool) {
	for _, c := range r.Comparisons {
		if c.Name == name {
			return c, true
		}
	}
	return Comparison{}, false
}
