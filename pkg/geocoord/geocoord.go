package geocoord

import (
	"fmt"

	"github.com/kailas-cloud/geocoord/internal/domain/coord"
	"github.com/kailas-cloud/geocoord/internal/domain/location"
	"github.com/kailas-cloud/geocoord/internal/intern"
	"github.com/kailas-cloud/geocoord/internal/metrics"
)

// Epsilon is the absolute tolerance used by every comparison.
const Epsilon = coord.Epsilon

type (
	// Coordinate is implemented by *Cartesian and *Spherical only.
	Coordinate = coord.Coordinate
	// Cartesian is an immutable (x, y, z) point.
	Cartesian = coord.Cartesian
	// Spherical is an immutable (phi, theta, radius) point.
	Spherical = coord.Spherical
	// Kind tags a coordinate representation.
	Kind = coord.Kind
	// Registry creates and interns coordinates. Safe for concurrent use.
	Registry = coord.Registry
	// Stats reports both interning caches of a Registry.
	Stats = coord.RegistryStats
	// Location is a named place referencing a shared coordinate.
	Location = location.Location
)

// Representation kinds.
const (
	KindCartesian = coord.KindCartesian
	KindSpherical = coord.KindSpherical
)

// New creates a Registry.
func New(opts ...Option) (*Registry, error) {
	cfg := &registryConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.shards < 0 || cfg.shards > intern.MaxShards {
		return nil, fmt.Errorf("geocoord: %w: shards must be in [0, %d], got %d",
			ErrInvalidArgument, intern.MaxShards, cfg.shards)
	}
	if cfg.maxEntries < 0 {
		return nil, fmt.Errorf("geocoord: %w: max entries must be >= 0, got %d", ErrInvalidArgument, cfg.maxEntries)
	}

	var m *metrics.Interning
	if cfg.metricsReg != nil {
		var err error
		m, err = metrics.NewInterning(cfg.metricsReg, cfg.namespace)
		if err != nil {
			return nil, fmt.Errorf("geocoord: register metrics: %w", err)
		}
	}

	return coord.NewRegistry(coord.RegistryConfig{
		Shards:     cfg.shards,
		MaxEntries: cfg.maxEntries,
		Metrics:    m,
		Logger:     cfg.logger,
	}), nil
}

// Distance returns the Euclidean distance between a and b in any representation.
func Distance(a, b Coordinate) (float64, error) { return coord.Distance(a, b) }

// CentralAngle returns the angle in radians between the rays from the origin
// through a and b. Fails with ErrConversionFailed when either point has no
// spherical form.
func CentralAngle(a, b Coordinate) (float64, error) { return coord.CentralAngle(a, b) }

// Equal reports whether a and b denote the same point within Epsilon.
func Equal(a, b Coordinate) bool { return coord.Equal(a, b) }

// NearlyEqual reports whether |a-b| < Epsilon.
func NearlyEqual(a, b float64) bool { return coord.NearlyEqual(a, b) }

// IsFinite reports whether d is neither NaN nor infinite.
func IsFinite(d float64) bool { return coord.IsFinite(d) }

// NewLocation creates a Location. The coordinate is required.
func NewLocation(name string, c Coordinate) (Location, error) { return location.New(name, c) }
