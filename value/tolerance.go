package value

import "math"

// Tolerance decides approximate equality.
type Tolerance struct {
	Eps float64 `json:"eps" yaml:"eps"`
	// Relative scales Eps by max(1, |a|, |b|).
	Relative bool `json:"relative" yaml:"relative"`
}

// DefaultTolerance is 1e-9, relative.
var DefaultTolerance = Tolerance{Eps: 1e-9, Relative: true}

func (t Tolerance) bound(scale ...float64) float64 {
	if !t.Relative {
		return t.Eps
	}
	m := 1.0
	for _, s := range scale {
		if a := math.Abs(s); a > m && !math.IsInf(a, 0) {
			m = a
		}
	}
	return t.Eps * m
}

// Close reports |a-b| <= eps (times max(1,|a|,|b|) when relative).
func (t Tolerance) Close(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= t.bound(a, b)
}

// Zero reports |x| <= eps, scaled by the magnitudes the caller supplies.
func (t Tolerance) Zero(x float64, scale ...float64) bool {
	return math.Abs(x) <= t.bound(scale...)
}
