package coord

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/r3"
)

// Cartesian is an immutable point (x, y, z). Obtain instances from a Registry.
type Cartesian struct {
	x, y, z float64
	reg     *Registry
}

func validateCartesian(x, y, z float64) error {
	if err := requireFinite("x", x); err != nil {
		return err
	}
	if err := requireFinite("y", y); err != nil {
		return err
	}
	return requireFinite("z", z)
}

// X returns the x component.
func (c *Cartesian) X() float64 { return c.x }

// Y returns the y component.
func (c *Cartesian) Y() float64 { return c.y }

// Z returns the z component.
func (c *Cartesian) Z() float64 { return c.z }

// Vector returns the point as an r3 vector.
func (c *Cartesian) Vector() r3.Vector { return r3.Vector{X: c.x, Y: c.y, Z: c.z} }

// Kind returns KindCartesian.
func (c *Cartesian) Kind() Kind { return KindCartesian }

// WithX returns the point with x replaced.
func (c *Cartesian) WithX(x float64) (*Cartesian, error) { return c.reg.Cartesian(x, c.y, c.z) }

// WithY returns the point with y replaced.
func (c *Cartesian) WithY(y float64) (*Cartesian, error) { return c.reg.Cartesian(c.x, y, c.z) }

// WithZ returns the point with z replaced.
func (c *Cartesian) WithZ(z float64) (*Cartesian, error) { return c.reg.Cartesian(c.x, c.y, z) }

// AsCartesian returns c itself.
func (c *Cartesian) AsCartesian() (*Cartesian, error) { return c, nil }

// AsSpherical converts c to its spherical form:
//
//	r = sqrt(x² + y² + z²), theta = atan2(y, x), phi = acos(z / r)
//
// Points with y < 0 are folded to (theta+π, 2π-phi). It fails with
// ErrConversionFailed when x or r is zero within Epsilon, or when a derived value
// falls outside the spherical ranges.
func (c *Cartesian) AsSpherical() (*Spherical, error) {
	const op = "as spherical"
	if err := c.checkInvariants(); err != nil {
		return nil, newOpError(op, c, ErrConversionFailed, err)
	}

	radius := c.Vector().Norm()
	if err := validateRadius(radius); err != nil {
		return nil, newOpError(op, c, ErrConversionFailed, err)
	}

	if err := AssertNonZero(c.x); err != nil {
		return nil, newOpError(op, c, ErrConversionFailed, fmt.Errorf("theta: %w", err))
	}
	theta := math.Atan2(c.y, c.x)

	if err := AssertNonZero(radius); err != nil {
		return nil, newOpError(op, c, ErrConversionFailed, fmt.Errorf("phi: %w", err))
	}
	phi := math.Acos(clampUnit(c.z / radius))

	// atan2 lands in (-π, 0) for y < 0. (theta+π, 2π-phi) names the same point
	// inside the spherical ranges. phi that rounds to 0 stays on the z axis.
	if theta < 0 {
		theta += math.Pi
		phi = 2*math.Pi - phi
		if phi >= 2*math.Pi {
			phi = 0
		}
	}
	if err := validateTheta(theta); err != nil {
		return nil, newOpError(op, c, ErrConversionFailed, err)
	}
	if err := validatePhi(phi); err != nil {
		return nil, newOpError(op, c, ErrConversionFailed, err)
	}

	if err := c.checkInvariants(); err != nil {
		return nil, newOpError(op, c, ErrConversionFailed, err)
	}

	s, err := c.reg.Spherical(phi, theta, radius)
	if err != nil {
		return nil, newOpError(op, c, ErrConversionFailed, err)
	}
	return s, nil
}

// DistanceTo returns the Euclidean distance to other.
func (c *Cartesian) DistanceTo(other Coordinate) (float64, error) { return Distance(c, other) }

// CentralAngleTo returns the central angle to other in radians.
func (c *Cartesian) CentralAngleTo(other Coordinate) (float64, error) {
	return CentralAngle(c, other)
}

// Equal reports whether other describes the same point within Epsilon. It never fails.
func (c *Cartesian) Equal(other Coordinate) bool { return Equal(c, other) }

// Hash returns a hash of the raw bits of x, y and z.
func (c *Cartesian) Hash() uint64 { return keyOf(c.x, c.y, c.z).hash() }

func (c *Cartesian) String() string {
	return fmt.Sprintf("cartesian(x=%s, y=%s, z=%s)", formatFloat(c.x), formatFloat(c.y), formatFloat(c.z))
}

func (c *Cartesian) sealed() {}

func (c *Cartesian) distance(o *Cartesian) float64 {
	return c.Vector().Distance(o.Vector())
}

func (c *Cartesian) sameValues(o *Cartesian) bool {
	return NearlyEqual(c.x, o.x) && NearlyEqual(c.y, o.y) && NearlyEqual(c.z, o.z)
}

func (c *Cartesian) checkInvariants() error {
	if err := validateCartesian(c.x, c.y, c.z); err != nil {
		return fmt.Errorf("cartesian invariant violated: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
