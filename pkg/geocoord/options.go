package geocoord

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Registry.
type Option interface {
	apply(*registryConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*registryConfig)

func (f optionFunc) apply(c *registryConfig) { f(c) }

type registryConfig struct {
	shards     int
	maxEntries int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
	namespace  string
}

// WithShards sets the shard count of each interning cache.
// Rounded up to a power of two, at most 65536. Default: 16.
func WithShards(n int) Option {
	return optionFunc(func(c *registryConfig) {
		c.shards = n
	})
}

// WithMaxEntries bounds each interning cache. Oldest entries are evicted first;
// an evicted coordinate may later be handed out as a new instance.
// Default: 0 (unbounded).
func WithMaxEntries(n int) Option {
	return optionFunc(func(c *registryConfig) {
		c.maxEntries = n
	})
}

// WithLogger enables debug logging of rejected inputs and evictions.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *registryConfig) {
		c.logger = l
	})
}

// WithPrometheus registers interning metrics (lookups, entries, evictions)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *registryConfig) {
		c.metricsReg = reg
	})
}

// WithMetricsNamespace overrides the metric name prefix. Default: "geocoord".
func WithMetricsNamespace(ns string) Option {
	return optionFunc(func(c *registryConfig) {
		c.namespace = ns
	})
}
