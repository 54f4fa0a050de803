package relation

import (
	"github.com/Sistemium/js-data/query"
	"github.com/Sistemium/js-data/record"
)

// KindHasMany is the kind recorded on descriptors produced by HasMany.
const KindHasMany = "hasMany"

// Strategy determines how related records are located relative to a
// parent record. It is chosen once at declaration time and never changes.
type Strategy int

const (
	// ForeignKey locates related records through an indexed lookup on a
	// field of the related records holding the parent's primary key.
	ForeignKey Strategy = iota

	// LocalKeys locates related records through a batch fetch by the ids
	// stored on the parent record.
	LocalKeys

	// ForeignKeys locates related records through a predicate scan over
	// the related collection, matching records whose key list contains
	// the parent's primary key.
	ForeignKeys
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case ForeignKey:
		return "foreignKey"
	case LocalKeys:
		return "localKeys"
	case ForeignKeys:
		return "foreignKeys"
	default:
		return "unknown"
	}
}

// Getter resolves the related records of a parent record.
type Getter func(parent record.Record) ([]record.Record, error)

// Setter assigns related records to a parent record and returns the
// current resolved value of the relationship field.
type Setter func(parent record.Record, children []record.Record) ([]record.Record, error)

// GetOverride is a user-supplied get function. It receives the default
// resolver bound to the parent's declaration as next, and may delegate
// to it. next is nil when linking is disabled.
type GetOverride func(parent record.Record, next Getter) ([]record.Record, error)

// SetOverride is a user-supplied set function. It receives the assigned
// children and the default assignment logic as next. next is nil when
// linking is disabled.
type SetOverride func(parent record.Record, children []record.Record, next Setter) ([]record.Record, error)

// Collection is the narrow view of a record collection that relationship
// resolution needs. It is satisfied by *collection.Collection.
type Collection interface {
	// CreateIndex ensures a secondary index exists on the given field.
	// It is idempotent.
	CreateIndex(field string) error

	// GetAll retrieves records by key, preserving key order. An empty
	// index name means a primary-key lookup; otherwise keys are looked
	// up in the named secondary index.
	GetAll(keys []any, index string) ([]record.Record, error)

	// Filter runs a predicate scan over the collection.
	Filter(q *query.Query) ([]record.Record, error)
}

// Descriptor describes a declared relationship. Strategy, StrategyField
// and Linked are resolved when the relationship is declared on a
// resource; before that only the builder-supplied fields are set.
type Descriptor struct {
	// Kind is the relationship kind, KindHasMany.
	Kind string

	// Parent and Related are the resource names of the two sides,
	// resolved at declaration time.
	Parent  string
	Related string

	// LocalField is the field installed on parent records. Defaults to
	// a camel-cased pluralization of the related resource name.
	LocalField string

	// ForeignKey, LocalKeys and ForeignKeys are the builder-supplied key
	// options. At most one is honored, in that priority order.
	ForeignKey  string
	LocalKeys   string
	ForeignKeys string

	// Strategy and StrategyField record the resolved linking strategy
	// and the field it operates on.
	Strategy      Strategy
	StrategyField string

	// Linked reports whether LocalField is a computed field. When false
	// the field is plain writable data with no automatic resolution.
	Linked bool

	// Link is the builder-supplied tri-state linking toggle. When nil,
	// the store-wide default applies.
	Link *bool

	// Enumerable reports whether LocalField is included when a parent
	// record is exported.
	Enumerable bool

	// Get and Set are the user-supplied accessor overrides, if any.
	Get GetOverride
	Set SetOverride
}

// HasManyBuilder is the builder for hasMany relationship options.
type HasManyBuilder struct {
	desc Descriptor
}

// HasMany returns a new relationship builder with default options.
func HasMany() *HasManyBuilder {
	return &HasManyBuilder{desc: Descriptor{Kind: KindHasMany}}
}

// LocalField sets the name of the field installed on parent records.
func (b *HasManyBuilder) LocalField(name string) *HasManyBuilder {
	b.desc.LocalField = name
	return b
}

// ForeignKey selects the ForeignKey strategy on the given field of the
// related records.
func (b *HasManyBuilder) ForeignKey(field string) *HasManyBuilder {
	b.desc.ForeignKey = field
	return b
}

// LocalKeys selects the LocalKeys strategy on the given field of the
// parent records.
func (b *HasManyBuilder) LocalKeys(field string) *HasManyBuilder {
	b.desc.LocalKeys = field
	return b
}

// ForeignKeys selects the ForeignKeys strategy on the given field of the
// related records.
func (b *HasManyBuilder) ForeignKeys(field string) *HasManyBuilder {
	b.desc.ForeignKeys = field
	return b
}

// Enumerable includes the local field when parent records are exported.
// Relationship fields are not enumerable by default, so they do not leak
// into naive serialization of a record.
func (b *HasManyBuilder) Enumerable() *HasManyBuilder {
	b.desc.Enumerable = true
	return b
}

// Link toggles linking for this relationship, overriding the store-wide
// default. With linking disabled the local field is plain writable data.
func (b *HasManyBuilder) Link(link bool) *HasManyBuilder {
	b.desc.Link = &link
	return b
}

// Get sets a custom get function wrapping the default resolution logic.
func (b *HasManyBuilder) Get(fn GetOverride) *HasManyBuilder {
	b.desc.Get = fn
	return b
}

// Set sets a custom set function wrapping the default assignment logic.
func (b *HasManyBuilder) Set(fn SetOverride) *HasManyBuilder {
	b.desc.Set = fn
	return b
}

// Descriptor returns a copy of the built descriptor.
func (b *HasManyBuilder) Descriptor() *Descriptor {
	d := b.desc
	return &d
}
