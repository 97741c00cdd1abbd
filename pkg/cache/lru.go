// Package cache provides the bounded least-recently-used cache used to
// memoize text measurements across frames.
package cache

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxSize is the capacity used when none is given.
const DefaultMaxSize = 500

// Stats describes cache occupancy.
type Stats struct {
	Size               int
	MaxSize            int
	UtilizationPercent int
}

// LRU is a strict least-recently-used cache. Get promotes an entry; Has
// does not. It is safe for concurrent use.
type LRU[K comparable, V any] struct {
	entries *lru.Cache[K, V]
	maxSize int
}

// New creates a cache holding at most maxSize entries. A non-positive
// maxSize selects DefaultMaxSize.
func New[K comparable, V any](maxSize int) *LRU[K, V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	entries, err := lru.New[K, V](maxSize)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &LRU[K, V]{entries: entries, maxSize: maxSize}
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	return c.entries.Get(key)
}

// Set inserts or overwrites a value, evicting the least recently used
// entry when the cache is full. It reports whether an eviction happened.
func (c *LRU[K, V]) Set(key K, value V) bool {
	return c.entries.Add(key, value)
}

// Has reports whether key is cached without touching its recency.
func (c *LRU[K, V]) Has(key K) bool {
	return c.entries.Contains(key)
}

// Delete removes key if present.
func (c *LRU[K, V]) Delete(key K) {
	c.entries.Remove(key)
}

// Clear drops every entry.
func (c *LRU[K, V]) Clear() {
	c.entries.Purge()
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.entries.Len()
}

// MaxSize returns the capacity.
func (c *LRU[K, V]) MaxSize() int {
	return c.maxSize
}

// Stats returns the current occupancy.
func (c *LRU[K, V]) Stats() Stats {
	size := c.entries.Len()
	return Stats{
		Size:               size,
		MaxSize:            c.maxSize,
		UtilizationPercent: int(math.Round(float64(size) / float64(c.maxSize) * 100)),
	}
}

// Keys returns the keys from least to most recently used.
func (c *LRU[K, V]) Keys() []K {
	return c.entries.Keys()
}
