package jsdata

import (
	"sort"
	"time"

	"github.com/Sistemium/js-data/cache"
	"github.com/Sistemium/js-data/collection"
	"github.com/Sistemium/js-data/schema"
)

// Store is a registry of resources. Define resources and their
// relationships during setup, before concurrent record access begins;
// Store performs no locking of its own around definition.
type Store struct {
	resources     map[string]*Resource
	linkRelations bool
	cache         cache.Cache
	cacheTTL      time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLinkRelations sets the store-wide default for relationship
// linking. It applies to relationships that do not set Link explicitly.
// The default is true.
func WithLinkRelations(link bool) Option {
	return func(s *Store) {
		s.linkRelations = link
	}
}

// WithCache attaches a query cache to every collection the store
// creates. Filter results are cached for the given TTL and invalidated
// on mutation.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Store) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		resources:     make(map[string]*Resource),
		linkRelations: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResourceOption configures a resource at definition time.
type ResourceOption func(*Resource)

// IDField sets the resource's primary key field. Defaults to "id".
func IDField(field string) ResourceOption {
	return func(r *Resource) {
		r.idField = field
	}
}

// Define registers a new resource and creates its collection. It panics
// with a *ResourceExistsError when the name is already taken: resource
// definition is a setup-phase activity and a duplicate name is a
// programming error.
func (s *Store) Define(name string, opts ...ResourceOption) *Resource {
	if _, ok := s.resources[name]; ok {
		panic(&ResourceExistsError{Name: name})
	}
	r := &Resource{
		name:    name,
		idField: collection.DefaultIDField,
		store:   s,
	}
	for _, opt := range opts {
		opt(r)
	}
	collOpts := []collection.Option{collection.IDField(r.idField)}
	if s.cache != nil {
		collOpts = append(collOpts, collection.WithCache(s.cache, s.cacheTTL))
	}
	r.collection = collection.New(name, collOpts...)
	s.resources[name] = r
	return r
}

// Resource returns the resource with the given name.
func (s *Store) Resource(name string) (*Resource, bool) {
	r, ok := s.resources[name]
	return r, ok
}

// Resources returns all defined resources, sorted by name.
func (s *Store) Resources() []*Resource {
	out := make([]*Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ApplySchema defines every resource of a parsed schema, then declares
// their relationships in a second pass so resources may reference each
// other in any order.
func (s *Store) ApplySchema(sc *schema.Schema) error {
	if sc == nil {
		return nil
	}
	for _, def := range sc.Resources {
		if _, ok := s.resources[def.Name]; ok {
			return &ResourceExistsError{Name: def.Name}
		}
		var opts []ResourceOption
		if def.IDField != "" {
			opts = append(opts, IDField(def.IDField))
		}
		s.Define(def.Name, opts...)
	}
	for _, def := range sc.Resources {
		parent := s.resources[def.Name]
		for _, hm := range def.HasMany {
			related, ok := s.resources[hm.Related]
			if !ok {
				return &UnknownResourceError{Name: hm.Related}
			}
			parent.HasMany(related, hm.Builder())
		}
	}
	return nil
}
