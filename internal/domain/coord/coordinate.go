package coord

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Kind tags the concrete representation behind a Coordinate.
type Kind uint8

const (
	// KindCartesian is the (x, y, z) representation.
	KindCartesian Kind = iota + 1
	// KindSpherical is the (phi, theta, radius) representation.
	KindSpherical
)

func (k Kind) String() string {
	switch k {
	case KindCartesian:
		return "cartesian"
	case KindSpherical:
		return "spherical"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Coordinate is a point in 3D space held in one of two representations.
// The set of implementations is closed: *Cartesian and *Spherical.
type Coordinate interface {
	Kind() Kind
	AsCartesian() (*Cartesian, error)
	AsSpherical() (*Spherical, error)
	DistanceTo(other Coordinate) (float64, error)
	CentralAngleTo(other Coordinate) (float64, error)
	Equal(other Coordinate) bool
	Hash() uint64
	String() string

	sealed()
}

// Distance returns the Euclidean distance between a and b.
// Both operands are converted to Cartesian before the primitive computation runs.
func Distance(a, b Coordinate) (float64, error) {
	if err := requirePresent("distance", a, b); err != nil {
		return 0, err
	}
	if err := checkInvariants(a); err != nil {
		return 0, newOpError("distance", a, ErrComputationFailed, err)
	}

	ca, err := a.AsCartesian()
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	cb, err := b.AsCartesian()
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}

	d := ca.distance(cb)
	if !IsFinite(d) || d < 0 {
		return 0, newOpError("distance", a, ErrComputationFailed,
			fmt.Errorf("result %g is not a finite non-negative number", d))
	}
	if err := checkInvariants(a); err != nil {
		return 0, newOpError("distance", a, ErrComputationFailed, err)
	}
	return d, nil
}

// CentralAngle returns the angle in radians between a and b as seen from the origin,
// using the spherical law of cosines. Both operands are converted to spherical.
func CentralAngle(a, b Coordinate) (float64, error) {
	if err := requirePresent("central angle", a, b); err != nil {
		return 0, err
	}
	if err := checkInvariants(a); err != nil {
		return 0, newOpError("central angle", a, ErrComputationFailed, err)
	}

	sa, err := a.AsSpherical()
	if err != nil {
		return 0, fmt.Errorf("central angle: %w", err)
	}
	sb, err := b.AsSpherical()
	if err != nil {
		return 0, fmt.Errorf("central angle: %w", err)
	}

	angle := sa.centralAngle(sb)
	if !IsFinite(angle) {
		return 0, newOpError("central angle", a, ErrComputationFailed,
			fmt.Errorf("result %g is not finite", angle))
	}
	if err := checkInvariants(a); err != nil {
		return 0, newOpError("central angle", a, ErrComputationFailed, err)
	}
	return angle, nil
}

// Equal reports whether a and b describe the same point within Epsilon.
//
// Same-representation pairs compare their own components. Mixed pairs compare in
// Cartesian space, since spherical to Cartesian conversion cannot fail; this keeps
// Equal(a, b) == Equal(b, a). A nil operand is never equal to anything.
func Equal(a, b Coordinate) bool {
	if !present(a) || !present(b) {
		return false
	}
	if a == b {
		return true
	}

	switch av := a.(type) {
	case *Cartesian:
		if bv, ok := b.(*Spherical); ok {
			return cartesianEqualsSpherical(av, bv)
		}
		return av.sameValues(b.(*Cartesian))
	case *Spherical:
		if bv, ok := b.(*Cartesian); ok {
			return cartesianEqualsSpherical(bv, av)
		}
		return av.sameValues(b.(*Spherical))
	default:
		return false
	}
}

func cartesianEqualsSpherical(c *Cartesian, s *Spherical) bool {
	converted, err := s.AsCartesian()
	if err != nil {
		return false
	}
	return c.sameValues(converted)
}

// IsNil reports whether c is nil or wraps a nil pointer.
func IsNil(c Coordinate) bool { return !present(c) }

func present(c Coordinate) bool {
	switch v := c.(type) {
	case nil:
		return false
	case *Cartesian:
		return v != nil
	case *Spherical:
		return v != nil
	default:
		return false
	}
}

func requirePresent(op string, a, b Coordinate) error {
	if !present(a) || !present(b) {
		return fmt.Errorf("%s: %w: both coordinates are required", op, ErrInvalidArgument)
	}
	return nil
}

func checkInvariants(c Coordinate) error {
	switch v := c.(type) {
	case *Cartesian:
		return v.checkInvariants()
	case *Spherical:
		return v.checkInvariants()
	default:
		return fmt.Errorf("unsupported coordinate type %T", c)
	}
}

// bitsKey is the bit-exact identity of a coordinate triple.
// -0.0 and +0.0 produce different keys.
type bitsKey [3]uint64

func keyOf(a, b, c float64) bitsKey {
	return bitsKey{math.Float64bits(a), math.Float64bits(b), math.Float64bits(c)}
}

func (k bitsKey) hash() uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], k[0])
	binary.LittleEndian.PutUint64(buf[8:], k[1])
	binary.LittleEndian.PutUint64(buf[16:], k[2])
	return xxhash.Sum64(buf[:])
}
