// Package cache defines the interface for caching resolved query results
// and provides an in-memory implementation.
package cache

import "time"

// Cache is the interface for caching query results. Implementations must
// be safe for concurrent use. Values are opaque encoded bytes; the
// collection layer handles serialization.
type Cache interface {
	// Get retrieves a value from the cache. The second return value is
	// false if the key does not exist.
	Get(key string) ([]byte, bool)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value does not expire.
	Set(key string, value []byte, ttl time.Duration)

	// Delete removes a value from the cache.
	Delete(key string)

	// DeletePrefix removes all values with the given key prefix.
	DeletePrefix(prefix string)

	// Clear removes all values from the cache.
	Clear()
}

// Key identifies a cached query result.
type Key struct {
	Collection string
	Op         string
	Query      string
}

// String returns the string representation of the cache key.
func (k Key) String() string {
	return k.Collection + ":" + k.Op + ":" + k.Query
}

// Nop is a Cache that stores nothing. Every Get is a miss.
type Nop struct{}

// Get implements Cache.
func (Nop) Get(string) ([]byte, bool) { return nil, false }

// Set implements Cache.
func (Nop) Set(string, []byte, time.Duration) {}

// Delete implements Cache.
func (Nop) Delete(string) {}

// DeletePrefix implements Cache.
func (Nop) DeletePrefix(string) {}

// Clear implements Cache.
func (Nop) Clear() {}
