// Package geo maps geodetic latitude/longitude onto interned Cartesian
// coordinates (ECEF on a sphere) and back.
package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"github.com/kailas-cloud/geocoord/internal/domain/coord"
)

// EarthRadiusMeters is the mean radius of Earth.
const EarthRadiusMeters = 6_371_000.0

// ValidateLatLon checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateLatLon(latDeg, lonDeg float64) error {
	if !(latDeg >= -90 && latDeg <= 90) {
		return fmt.Errorf("%w: latitude %g out of [-90, 90]", coord.ErrInvalidArgument, latDeg)
	}
	if !(lonDeg >= -180 && lonDeg <= 180) {
		return fmt.Errorf("%w: longitude %g out of [-180, 180]", coord.ErrInvalidArgument, lonDeg)
	}
	return nil
}

// FromLatLon returns the ECEF point at latitude/longitude (degrees) on a sphere of
// the given radius. Use EarthRadiusMeters for meters, 1 for a unit vector.
func FromLatLon(reg *coord.Registry, latDeg, lonDeg, radius float64) (*coord.Cartesian, error) {
	if err := ValidateLatLon(latDeg, lonDeg); err != nil {
		return nil, err
	}
	if !(radius >= 0) || math.IsInf(radius, 1) {
		return nil, fmt.Errorf("%w: radius %g must be finite and >= 0", coord.ErrInvalidArgument, radius)
	}
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(latDeg, lonDeg))
	return reg.Cartesian(p.X*radius, p.Y*radius, p.Z*radius)
}

// ToLatLon returns the latitude/longitude (degrees) of the ray through c.
// The origin has no direction and fails with ErrConversionFailed.
func ToLatLon(c coord.Coordinate) (latDeg, lonDeg float64, err error) {
	v, err := direction(c)
	if err != nil {
		return 0, 0, err
	}
	ll := s2.LatLngFromPoint(s2.Point{Vector: v})
	return ll.Lat.Degrees(), ll.Lng.Degrees(), nil
}

// ArcMeters returns the great-circle distance on Earth between the rays through a
// and b. It works from Cartesian vectors, so points with x = 0 are fine.
func ArcMeters(a, b coord.Coordinate) (float64, error) {
	va, err := direction(a)
	if err != nil {
		return 0, err
	}
	vb, err := direction(b)
	if err != nil {
		return 0, err
	}
	return va.Angle(vb).Radians() * EarthRadiusMeters, nil
}

func direction(c coord.Coordinate) (v r3.Vector, err error) {
	if coord.IsNil(c) {
		return v, fmt.Errorf("%w: coordinate is required", coord.ErrInvalidArgument)
	}
	cart, err := c.AsCartesian()
	if err != nil {
		return v, err
	}
	v = cart.Vector()
	if err := coord.AssertNonZero(v.Norm()); err != nil {
		return v, fmt.Errorf("%w: %s has no direction: %v", coord.ErrConversionFailed, cart, err)
	}
	return v, nil
}
