// Package collection provides the in-memory record collection backing a
// resource: insertion-ordered storage keyed by a primary id field,
// idempotent secondary indexes for sub-linear lookups, predicate scans,
// and msgpack snapshots.
//
// Collections are safe for concurrent use. Readers hold no locks beyond
// the collection's own RWMutex; records returned by lookups are the live
// stored values, so mutating them directly bypasses index maintenance.
// Re-insert a record to reindex it.
package collection

import (
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"

	"github.com/Sistemium/js-data/cache"
	"github.com/Sistemium/js-data/query"
	"github.com/Sistemium/js-data/record"
)

// DefaultIDField is the primary key field used when none is configured.
const DefaultIDField = "id"

// Collection is an in-memory, insertion-ordered record set with
// secondary indexes.
type Collection struct {
	name    string
	idField string

	mu      sync.RWMutex
	records map[any]record.Record
	order   []any
	indexes map[string]*index

	cache    cache.Cache
	cacheTTL time.Duration
	sf       singleflight.Group
}

// Option configures a Collection.
type Option func(*Collection)

// IDField sets the primary key field. Defaults to "id".
func IDField(field string) Option {
	return func(c *Collection) {
		c.idField = field
	}
}

// WithCache enables caching of Filter results. Cached entries are
// invalidated on every mutation of the collection.
func WithCache(cc cache.Cache, ttl time.Duration) Option {
	return func(c *Collection) {
		c.cache = cc
		c.cacheTTL = ttl
	}
}

// New returns an empty collection with the given name.
func New(name string, opts ...Option) *Collection {
	c := &Collection{
		name:    name,
		idField: DefaultIDField,
		records: make(map[any]record.Record),
		indexes: make(map[string]*index),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// IDFieldName returns the primary key field name.
func (c *Collection) IDFieldName() string { return c.idField }

// Len returns the number of stored records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Insert stores the record, assigning a UUID id when the id field is
// missing. Inserting a record whose id already exists replaces the
// stored record in place, keeping its insertion position. The stored
// record is returned.
func (c *Collection) Insert(rec record.Record) (record.Record, error) {
	if rec == nil {
		rec = record.Record{}
	}
	id := record.Get(rec, c.idField)
	if id == nil {
		id = uuid.NewString()
		record.Set(rec, c.idField, id)
	}
	if !isComparable(id) {
		return nil, &InvalidIDError{Collection: c.name, Value: id}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.records[id]; ok {
		for _, ix := range c.indexes {
			ix.remove(old, id)
		}
	} else {
		c.order = append(c.order, id)
	}
	c.records[id] = rec
	for _, ix := range c.indexes {
		ix.add(rec, id)
	}
	c.invalidate()
	return rec, nil
}

// Get returns the record with the given id.
func (c *Collection) Get(id any) (record.Record, bool) {
	if !isComparable(id) {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[id]
	return rec, ok
}

// Remove deletes the record with the given id and returns it.
func (c *Collection) Remove(id any) (record.Record, bool) {
	if !isComparable(id) {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[id]
	if !ok {
		return nil, false
	}
	delete(c.records, id)
	for i, x := range c.order {
		if x == id {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
	for _, ix := range c.indexes {
		ix.remove(rec, id)
	}
	c.invalidate()
	return rec, true
}

// All returns every record in insertion order.
func (c *Collection) All() []record.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.all()
}

func (c *Collection) all() []record.Record {
	out := make([]record.Record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.records[id])
	}
	return out
}

// CreateIndex ensures a secondary index exists on the given field,
// backfilling it from the stored records. Requesting the same index
// twice is a no-op.
func (c *Collection) CreateIndex(field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.indexes[field]; ok {
		return nil
	}
	ix := newIndex(field)
	for _, id := range c.order {
		ix.add(c.records[id], id)
	}
	c.indexes[field] = ix
	return nil
}

// HasIndex reports whether a secondary index exists on the given field.
func (c *Collection) HasIndex(field string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.indexes[field]
	return ok
}

// GetAll retrieves records by key, preserving key order. With an empty
// index name keys are primary ids and missing ids are skipped; otherwise
// keys are looked up in the named secondary index and each key yields
// the records indexed under it, in insertion order. The result is always
// a non-nil slice.
func (c *Collection) GetAll(keys []any, index string) ([]record.Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]record.Record, 0, len(keys))
	if index == "" {
		for _, key := range keys {
			if !isComparable(key) {
				continue
			}
			if rec, ok := c.records[key]; ok {
				out = append(out, rec)
			}
		}
		return out, nil
	}
	ix, ok := c.indexes[index]
	if !ok {
		return nil, &NoIndexError{Collection: c.name, Index: index}
	}
	for _, key := range keys {
		if !isComparable(key) {
			continue
		}
		for _, id := range ix.ids[key] {
			out = append(out, c.records[id])
		}
	}
	return out, nil
}

// Filter runs a predicate scan over the collection in insertion order.
// With a cache configured, results are served from it when possible;
// cache hits return detached copies of the records. Concurrent identical
// queries are coalesced into a single evaluation.
func (c *Collection) Filter(q *query.Query) ([]record.Record, error) {
	if c.cache == nil {
		return q.Apply(c.All()), nil
	}
	key := cache.Key{Collection: c.name, Op: "filter", Query: q.Key()}.String()
	v, err, _ := c.sf.Do(key, func() (any, error) {
		if data, ok := c.cache.Get(key); ok {
			var recs []record.Record
			if err := msgpack.Unmarshal(data, &recs); err == nil {
				if recs == nil {
					recs = []record.Record{}
				}
				return recs, nil
			}
			// Undecodable entry: drop it and fall through to a scan.
			c.cache.Delete(key)
		}
		recs := q.Apply(c.All())
		if data, err := msgpack.Marshal(recs); err == nil {
			c.cache.Set(key, data, c.cacheTTL)
		}
		return recs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]record.Record), nil
}

// invalidate drops every cached query result of this collection.
// Callers must hold the write lock.
func (c *Collection) invalidate() {
	if c.cache != nil {
		c.cache.DeletePrefix(c.name + ":")
	}
}

// isComparable reports whether a value can be used as a map key.
func isComparable(v any) bool {
	return v != nil && reflect.TypeOf(v).Comparable()
}
