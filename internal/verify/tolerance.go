package verify

// DefaultTolerance is the error threshold applied to every check unless a
// case overrides it.
const DefaultTolerance = 1e-5

// ToleranceFor returns the override for the named case if overrides has
// one, otherwise fallback, or DefaultTolerance when fallback is not
// positive.
func ToleranceFor(overrides map[string]float64, name string, fallback float64) float64 {
	if t, ok := overrides[name]; ok {
		return t
	}
	if fallback <= 0 {
		return DefaultTolerance
	}
	return fallback
}
