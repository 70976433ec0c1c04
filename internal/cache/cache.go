// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package cache provides the capacity and time bounded caches that sit in front of the weather
// providers. Each data kind gets its own TTL instance with its own size and lifetime.
package cache

import (
	"fmt"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/wneessen/weather-aggregator/internal/metrics"
)

// coordFormat quantizes coordinates to 4 decimal places (about 11 m).
const coordFormat = "%.4f,%.4f"

// Stats is a diagnostics snapshot of a cache.
type Stats struct {
	Size       int      `json:"size"`
	MaxSize    int      `json:"max_size"`
	TTLSeconds int      `json:"ttl_seconds"`
	Keys       []string `json:"keys"`
}

// Statter is implemented by every TTL cache regardless of its value type.
type Statter interface {
	Name() string
	Stats() Stats
	Clear()
}

// TTL is a concurrency safe LRU cache whose entries expire a fixed duration after insertion.
type TTL[V any] struct {
	name string
	size int
	ttl  time.Duration
	lru  *expirable.LRU[string, V]
}

// New returns a TTL cache holding at most size entries for the given ttl each.
func New[V any](name string, size int, ttl time.Duration) *TTL[V] {
	return &TTL[V]{
		name: name,
		size: size,
		ttl:  ttl,
		lru:  expirable.NewLRU[string, V](size, nil, ttl),
	}
}

// Name returns the name of the cache as used in metrics and diagnostics.
func (c *TTL[V]) Name() string {
	return c.name
}

// Get returns the value stored for key. ok is false if the key was never set, has expired or
// was evicted.
func (c *TTL[V]) Get(key string) (value V, ok bool) {
	value, ok = c.lru.Get(key)
	result := metrics.CacheMiss
	if ok {
		result = metrics.CacheHit
	}
	metrics.CacheRequestsTotal.WithLabelValues(c.name, result).Inc()
	return value, ok
}

// Set stores value under key and restarts its expiry clock. The least recently used entry is
// evicted if the cache is full.
func (c *TTL[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

// Clear removes all entries.
func (c *TTL[V]) Clear() {
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *TTL[V]) Len() int {
	return len(c.lru.Keys())
}

// Stats returns a diagnostics snapshot of the cache.
func (c *TTL[V]) Stats() Stats {
	keys := c.lru.Keys()
	if keys == nil {
		keys = []string{}
	}
	return Stats{
		Size:       len(keys),
		MaxSize:    c.size,
		TTLSeconds: int(c.ttl.Seconds()),
		Keys:       slices.Clone(keys),
	}
}

// Key returns the cache key for a coordinate.
func Key(lat, lon float64) string {
	return fmt.Sprintf(coordFormat, lat, lon)
}

// KindKey returns the cache key for a coordinate prefixed by the data kind.
func KindKey(kind string, lat, lon float64) string {
	return kind + ":" + Key(lat, lon)
}

// BucketKey returns the kind prefixed key suffixed with the time bucket of length window that
// contains at. Keys roll over to a fresh bucket on their own so slow changing data refreshes
// without explicit invalidation.
func BucketKey(kind string, lat, lon float64, at time.Time, window time.Duration) string {
	secs := int64(window.Seconds())
	if secs <= 0 {
		return KindKey(kind, lat, lon)
	}
	return fmt.Sprintf("%s:%d", KindKey(kind, lat, lon), at.Unix()/secs)
}
