// Package intern provides a sharded flyweight cache that hands out at most one
// instance per key.
package intern

import (
	"container/list"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/geocoord/internal/metrics"
)

const (
	// DefaultShards is used when Config.Shards is not positive.
	DefaultShards = 16
	// MaxShards caps Config.Shards.
	MaxShards = 1 << 16
)

// Config configures a Cache.
type Config[K comparable] struct {
	// Name labels metrics and log lines, e.g. "cartesian".
	Name string
	// Shards is rounded up to a power of two, at most MaxShards. A bounded cache
	// uses no more shards than MaxEntries.
	Shards int
	// MaxEntries bounds the cache with FIFO eviction per shard. 0 = unbounded.
	MaxEntries int
	// Hash picks the shard for a key. Required.
	Hash func(K) uint64

	Metrics *metrics.Interning
	Logger  *zap.Logger
}

// Stats is a point-in-time view of a cache.
type Stats struct {
	Entries   int64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache maps keys to shared values. Lookups take a shard read lock; inserts take
// the shard write lock and re-check before constructing, so concurrent callers
// with the same key always observe the same value.
type Cache[K comparable, V any] struct {
	name        string
	shards      []*shard[K, V]
	mask        uint64
	hash        func(K) uint64
	maxPerShard int
	logger      *zap.Logger

	entries   atomic.Int64
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64

	lookupHit  prometheus.Counter
	lookupMiss prometheus.Counter
	size       prometheus.Gauge
	evicted    prometheus.Counter
}

type shard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order *list.List // insertion order, bounded caches only
}

// New creates a Cache.
func New[K comparable, V any](cfg Config[K]) *Cache[K, V] {
	if cfg.Hash == nil {
		panic("intern: Config.Hash is required")
	}
	n := shardCount(cfg.Shards)
	if cfg.MaxEntries > 0 && n > cfg.MaxEntries {
		// Every shard holds at least one entry.
		n = 1 << (bits.Len(uint(cfg.MaxEntries)) - 1)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Cache[K, V]{
		name:   cfg.Name,
		shards: make([]*shard[K, V], n),
		mask:   uint64(n - 1),
		hash:   cfg.Hash,
		logger: logger.With(zap.String("cache", cfg.Name)),
	}
	if cfg.MaxEntries > 0 {
		c.maxPerShard = cfg.MaxEntries / n
	}
	for i := range c.shards {
		s := &shard[K, V]{items: make(map[K]V)}
		if c.maxPerShard > 0 {
			s.order = list.New()
		}
		c.shards[i] = s
	}
	if m := cfg.Metrics; m != nil {
		c.lookupHit = m.Lookups.WithLabelValues(cfg.Name, "hit")
		c.lookupMiss = m.Lookups.WithLabelValues(cfg.Name, "miss")
		c.size = m.Entries.WithLabelValues(cfg.Name)
		c.evicted = m.Evictions.WithLabelValues(cfg.Name)
	}
	return c
}

// GetOrCreate returns the value stored under key, calling create to build it on a
// miss. create runs at most once per key while the key stays cached, and never
// under contention for the same key.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	s := c.shardFor(key)

	s.mu.RLock()
	v, ok := s.items[key]
	s.mu.RUnlock()
	if ok {
		c.recordHit()
		return v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another goroutine may have won the write lock first.
	if v, ok := s.items[key]; ok {
		c.recordHit()
		return v
	}

	c.recordMiss()
	v = create()
	if c.maxPerShard > 0 && len(s.items) >= c.maxPerShard {
		c.evictOldest(s)
	}
	s.items[key] = v
	if s.order != nil {
		s.order.PushBack(key)
	}
	c.entries.Add(1)
	if c.size != nil {
		c.size.Inc()
	}
	return v
}

// Get returns the value stored under key without creating one.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Len returns the number of cached values.
func (c *Cache[K, V]) Len() int { return int(c.entries.Load()) }

// Stats returns counters accumulated since the cache was created.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Entries:   c.entries.Load(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// evictOldest drops the first-inserted key of s. Caller holds s.mu.
func (c *Cache[K, V]) evictOldest(s *shard[K, V]) {
	front := s.order.Front()
	if front == nil {
		return
	}
	key := s.order.Remove(front).(K)
	delete(s.items, key)
	c.entries.Add(-1)
	c.evictions.Add(1)
	if c.size != nil {
		c.size.Dec()
	}
	if c.evicted != nil {
		c.evicted.Inc()
	}
	c.logger.Debug("Evicted interned value", zap.Int("shard_len", len(s.items)))
}

func (c *Cache[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hash(key)&c.mask]
}

func (c *Cache[K, V]) recordHit() {
	c.hits.Add(1)
	if c.lookupHit != nil {
		c.lookupHit.Inc()
	}
}

func (c *Cache[K, V]) recordMiss() {
	c.misses.Add(1)
	if c.lookupMiss != nil {
		c.lookupMiss.Inc()
	}
}

func shardCount(n int) int {
	if n <= 0 {
		return DefaultShards
	}
	if n >= MaxShards {
		return MaxShards
	}
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}
