package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every geocoord metric name.
const DefaultNamespace = "geocoord"

// Interning holds the Prometheus collectors for the coordinate interning caches.
// Every collector is labelled by "cache" (cartesian / spherical).
type Interning struct {
	Lookups   *prometheus.CounterVec // labels: cache, result ("hit" / "miss")
	Entries   *prometheus.GaugeVec
	Evictions *prometheus.CounterVec
}

// NewInterning creates the interning collectors and registers them on reg.
// Collectors already registered under the same names are reused, so several
// registries in one process can share a Registerer.
func NewInterning(reg prometheus.Registerer, namespace string) (*Interning, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	m := &Interning{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intern",
			Name:      "lookups_total",
			Help:      "Interning cache lookups by cache and result.",
		}, []string{"cache", "result"}),
		Entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "intern",
			Name:      "entries",
			Help:      "Number of canonical instances held by the interning cache.",
		}, []string{"cache"}),
		Evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intern",
			Name:      "evictions_total",
			Help:      "Instances dropped from a bounded interning cache.",
		}, []string{"cache"}),
	}
	if reg == nil {
		return m, nil
	}
	if err := registerOrReuse(reg, &m.Lookups); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.Entries); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.Evictions); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or swaps in the one already registered.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}
