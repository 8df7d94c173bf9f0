// Package geocoord provides immutable 3-D coordinates in Cartesian and spherical
// form, with Euclidean distance, central angle and tolerance-based equality
// across representations.
//
// Coordinates are created through a Registry, which interns them: asking twice
// for the same components returns the same pointer.
//
//	reg, _ := geocoord.New(geocoord.WithPrometheus(prometheus.DefaultRegisterer))
//	a, _ := reg.Cartesian(12, 3, 9)
//	b, _ := reg.Spherical(0.5, 0.923, 4.0)
//	d, _ := geocoord.Distance(a, b)
//	angle, _ := geocoord.CentralAngle(a, b)
//
// Spherical components follow the package's fixed convention: Phi is measured
// from the z axis in [0, 2π), Theta is the azimuth in [0, π].
//
// Errors wrap one of ErrInvalidArgument, ErrConversionFailed or
// ErrComputationFailed. Use errors.Is() to check.
package geocoord
