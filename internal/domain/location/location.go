package location

import (
	"fmt"

	"github.com/golang/geo/s1"

	"github.com/kailas-cloud/geocoord/internal/domain/coord"
)

// Location is an immutable named place pointing at a shared coordinate.
// The coordinate is referenced, not owned.
type Location struct {
	name       string
	coordinate coord.Coordinate
}

// New creates a Location. The coordinate is required; the name may be empty.
func New(name string, c coord.Coordinate) (Location, error) {
	if coord.IsNil(c) {
		return Location{}, fmt.Errorf("location %q: %w: coordinate is required", name, coord.ErrInvalidArgument)
	}
	return Location{name: name, coordinate: c}, nil
}

// Name returns the location name.
func (l Location) Name() string { return l.name }

// Coordinate returns the referenced coordinate.
func (l Location) Coordinate() coord.Coordinate { return l.coordinate }

// WithCoordinate returns a copy of l pointing at c.
func (l Location) WithCoordinate(c coord.Coordinate) (Location, error) {
	return New(l.name, c)
}

// DistanceTo returns the Euclidean distance between both coordinates.
func (l Location) DistanceTo(o Location) (float64, error) {
	d, err := coord.Distance(l.coordinate, o.coordinate)
	if err != nil {
		return 0, fmt.Errorf("location %q: %w", l.name, err)
	}
	return d, nil
}

// AngleTo returns the central angle between both coordinates.
func (l Location) AngleTo(o Location) (s1.Angle, error) {
	a, err := coord.CentralAngle(l.coordinate, o.coordinate)
	if err != nil {
		return 0, fmt.Errorf("location %q: %w", l.name, err)
	}
	return s1.Angle(a) * s1.Radian, nil
}

// SameAs reports whether both locations point at equal coordinates.
func (l Location) SameAs(o Location) bool {
	return coord.Equal(l.coordinate, o.coordinate)
}
