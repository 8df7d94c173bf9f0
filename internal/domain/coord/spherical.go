package coord

import (
	"fmt"
	"math"
)

// Spherical is an immutable point (phi, theta, radius). Obtain instances from a Registry.
//
// phi is the angle measured from the z axis and lies in [0, 2π); theta is the azimuth
// in the x/y plane and lies in [0, π]; radius is non-negative.
type Spherical struct {
	phi, theta, radius float64
	reg                *Registry
}

func validatePhi(phi float64) error {
	if !IsFinite(phi) || phi < 0 || phi >= 2*math.Pi {
		return fmt.Errorf("%w: phi must be in [0, 2π), got %g", ErrInvalidArgument, phi)
	}
	return nil
}

func validateTheta(theta float64) error {
	if !IsFinite(theta) || theta < 0 || theta > math.Pi {
		return fmt.Errorf("%w: theta must be in [0, π], got %g", ErrInvalidArgument, theta)
	}
	return nil
}

func validateRadius(radius float64) error {
	if !IsFinite(radius) || radius < 0 {
		return fmt.Errorf("%w: radius must be a non-negative finite number, got %g", ErrInvalidArgument, radius)
	}
	return nil
}

func validateSpherical(phi, theta, radius float64) error {
	if err := validatePhi(phi); err != nil {
		return err
	}
	if err := validateTheta(theta); err != nil {
		return err
	}
	return validateRadius(radius)
}

// Phi returns the angle from the z axis in radians.
func (s *Spherical) Phi() float64 { return s.phi }

// Theta returns the azimuth in radians.
func (s *Spherical) Theta() float64 { return s.theta }

// Radius returns the distance from the origin.
func (s *Spherical) Radius() float64 { return s.radius }

// Kind returns KindSpherical.
func (s *Spherical) Kind() Kind { return KindSpherical }

// WithPhi returns the point with phi replaced.
func (s *Spherical) WithPhi(phi float64) (*Spherical, error) {
	return s.reg.Spherical(phi, s.theta, s.radius)
}

// WithTheta returns the point with theta replaced.
func (s *Spherical) WithTheta(theta float64) (*Spherical, error) {
	return s.reg.Spherical(s.phi, theta, s.radius)
}

// WithRadius returns the point with radius replaced.
func (s *Spherical) WithRadius(radius float64) (*Spherical, error) {
	return s.reg.Spherical(s.phi, s.theta, radius)
}

// AsCartesian converts s to Cartesian form. No division is involved, so a valid
// operand always converts.
func (s *Spherical) AsCartesian() (*Cartesian, error) {
	const op = "as cartesian"
	if err := s.checkInvariants(); err != nil {
		return nil, newOpError(op, s, ErrConversionFailed, err)
	}

	sinPhi, cosPhi := math.Sincos(s.phi)
	sinTheta, cosTheta := math.Sincos(s.theta)
	x := s.radius * sinPhi * cosTheta
	y := s.radius * sinPhi * sinTheta
	z := s.radius * cosPhi

	c, err := s.reg.Cartesian(x, y, z)
	if err != nil {
		return nil, newOpError(op, s, ErrConversionFailed, err)
	}
	return c, nil
}

// AsSpherical returns s itself.
func (s *Spherical) AsSpherical() (*Spherical, error) { return s, nil }

// DistanceTo returns the Euclidean distance to other.
func (s *Spherical) DistanceTo(other Coordinate) (float64, error) { return Distance(s, other) }

// CentralAngleTo returns the central angle to other in radians.
func (s *Spherical) CentralAngleTo(other Coordinate) (float64, error) {
	return CentralAngle(s, other)
}

// Equal reports whether other describes the same point within Epsilon. It never fails.
func (s *Spherical) Equal(other Coordinate) bool { return Equal(s, other) }

// Hash returns a hash of the raw bits of phi, theta and radius.
func (s *Spherical) Hash() uint64 { return keyOf(s.phi, s.theta, s.radius).hash() }

func (s *Spherical) String() string {
	return fmt.Sprintf("spherical(phi=%s, theta=%s, radius=%s)",
		formatFloat(s.phi), formatFloat(s.theta), formatFloat(s.radius))
}

func (s *Spherical) sealed() {}

// centralAngle applies the spherical law of cosines:
//
//	acos(sin φ1·sin φ2 + cos φ1·cos φ2·cos |θ1 - θ2|)
func (s *Spherical) centralAngle(o *Spherical) float64 {
	dTheta := math.Abs(s.theta - o.theta)
	cosAngle := math.Sin(s.phi)*math.Sin(o.phi) +
		math.Cos(s.phi)*math.Cos(o.phi)*math.Cos(dTheta)
	return math.Acos(clampUnit(cosAngle))
}

func (s *Spherical) sameValues(o *Spherical) bool {
	return NearlyEqual(s.phi, o.phi) && NearlyEqual(s.theta, o.theta) && NearlyEqual(s.radius, o.radius)
}

func (s *Spherical) checkInvariants() error {
	if err := validateSpherical(s.phi, s.theta, s.radius); err != nil {
		return fmt.Errorf("spherical invariant violated: %w", err)
	}
	return nil
}
