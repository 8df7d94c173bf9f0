package coord

import (
	"fmt"
	"math"
)

// Epsilon is the absolute tolerance for every floating-point comparison in this package.
const Epsilon = 1e-8

// IsFinite reports whether d is neither NaN nor ±Inf.
func IsFinite(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0)
}

// NearlyEqual reports whether a and b differ by less than Epsilon.
// NaN is never nearly equal to anything, itself included.
func NearlyEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return math.Abs(a-b) < Epsilon
}

// AssertNonZero fails with ErrInvalidArgument when |d| <= Epsilon.
// Used to guard divisions ahead of angle computations.
func AssertNonZero(d float64) error {
	if math.Abs(d) <= Epsilon {
		return fmt.Errorf("%w: denominator %g is zero", ErrInvalidArgument, d)
	}
	return nil
}

// clampUnit pins v into [-1, 1] before acos. Rounding noise can push a cosine
// slightly past the bounds and acos would return NaN.
func clampUnit(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

func requireFinite(name string, v float64) error {
	if !IsFinite(v) {
		return fmt.Errorf("%w: %s must be a finite number, got %g", ErrInvalidArgument, name, v)
	}
	return nil
}
