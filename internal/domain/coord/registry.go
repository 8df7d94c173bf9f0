package coord

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/geocoord/internal/intern"
	"github.com/kailas-cloud/geocoord/internal/metrics"
)

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	Shards     int // per cache, rounded up to a power of two
	MaxEntries int // per cache; 0 = unbounded
	Metrics    *metrics.Interning
	Logger     *zap.Logger
}

// RegistryStats reports both interning caches.
type RegistryStats struct {
	Cartesian intern.Stats
	Spherical intern.Stats
}

// Registry is the factory for coordinates. It owns one interning cache per
// representation, so equal bit patterns always map to the same instance.
//
// A nil *Registry is valid: it validates input and returns fresh, uninterned values.
type Registry struct {
	cartesians *intern.Cache[bitsKey, *Cartesian]
	sphericals *intern.Cache[bitsKey, *Spherical]
	logger     *zap.Logger
}

// NewRegistry creates a Registry with two empty caches.
func NewRegistry(cfg RegistryConfig) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{logger: logger}
	r.cartesians = intern.New[bitsKey, *Cartesian](intern.Config[bitsKey]{
		Name:       KindCartesian.String(),
		Shards:     cfg.Shards,
		MaxEntries: cfg.MaxEntries,
		Hash:       bitsKey.hash,
		Metrics:    cfg.Metrics,
		Logger:     logger,
	})
	r.sphericals = intern.New[bitsKey, *Spherical](intern.Config[bitsKey]{
		Name:       KindSpherical.String(),
		Shards:     cfg.Shards,
		MaxEntries: cfg.MaxEntries,
		Hash:       bitsKey.hash,
		Metrics:    cfg.Metrics,
		Logger:     logger,
	})
	return r
}

// Cartesian returns the shared instance for (x, y, z).
// It fails with ErrInvalidArgument if any component is NaN or infinite.
func (r *Registry) Cartesian(x, y, z float64) (*Cartesian, error) {
	if err := validateCartesian(x, y, z); err != nil {
		r.rejected(KindCartesian, err)
		return nil, err
	}
	if r == nil {
		return &Cartesian{x: x, y: y, z: z}, nil
	}
	return r.cartesians.GetOrCreate(keyOf(x, y, z), func() *Cartesian {
		return &Cartesian{x: x, y: y, z: z, reg: r}
	}), nil
}

// Spherical returns the shared instance for (phi, theta, radius).
// It fails with ErrInvalidArgument unless 0 <= phi < 2π, 0 <= theta <= π,
// radius >= 0 and all three are finite.
func (r *Registry) Spherical(phi, theta, radius float64) (*Spherical, error) {
	if err := validateSpherical(phi, theta, radius); err != nil {
		r.rejected(KindSpherical, err)
		return nil, err
	}
	if r == nil {
		return &Spherical{phi: phi, theta: theta, radius: radius}, nil
	}
	return r.sphericals.GetOrCreate(keyOf(phi, theta, radius), func() *Spherical {
		return &Spherical{phi: phi, theta: theta, radius: radius, reg: r}
	}), nil
}

// Stats returns counters for both caches. A nil Registry reports zeros.
func (r *Registry) Stats() RegistryStats {
	if r == nil {
		return RegistryStats{}
	}
	return RegistryStats{
		Cartesian: r.cartesians.Stats(),
		Spherical: r.sphericals.Stats(),
	}
}

func (r *Registry) rejected(kind Kind, err error) {
	if r == nil {
		return
	}
	r.logger.Debug("Rejected coordinate", zap.Stringer("kind", kind), zap.Error(err))
}
