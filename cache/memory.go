package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Cache backed by github.com/patrickmn/go-cache.
type Memory struct {
	c *gocache.Cache
}

// NewMemory returns a Memory cache. defaultTTL applies to entries stored
// with a zero TTL; pass 0 to keep such entries until deleted.
func NewMemory(defaultTTL time.Duration) *Memory {
	ttl := defaultTTL
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	return &Memory{c: gocache.New(ttl, 10*time.Minute)}
}

// Get implements Cache.
func (m *Memory) Get(key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Set implements Cache.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, value, ttl)
}

// Delete implements Cache.
func (m *Memory) Delete(key string) {
	m.c.Delete(key)
}

// DeletePrefix implements Cache.
func (m *Memory) DeletePrefix(prefix string) {
	for key := range m.c.Items() {
		if strings.HasPrefix(key, prefix) {
			m.c.Delete(key)
		}
	}
}

// Clear implements Cache.
func (m *Memory) Clear() {
	m.c.Flush()
}
