package jsdata

import (
	"sort"

	"github.com/Sistemium/js-data/collection"
	"github.com/Sistemium/js-data/record"
	"github.com/Sistemium/js-data/schema/relation"
)

// Resource is a named record type: it owns a collection of records and
// carries the type-level metadata other layers consult, namely the
// relationship registry and the computed-field table used by Get and
// Set.
type Resource struct {
	name       string
	idField    string
	store      *Store
	collection *collection.Collection

	// relations and relationFields are the relationship registry:
	// append-only ordered lists, created lazily on the first
	// declaration and never pruned.
	relations      []*relation.Descriptor
	relationFields []string

	// computed is the per-type field-descriptor table. Field access on
	// records of this resource consults it before falling back to the
	// stored value.
	computed map[string]*accessor
}

// accessor is an installed computed-field pair. A nil get or set falls
// through to plain record field access.
type accessor struct {
	get        relation.Getter
	set        relation.Setter
	enumerable bool
}

// Name returns the resource name.
func (r *Resource) Name() string { return r.name }

// IDField returns the resource's primary key field name.
func (r *Resource) IDField() string { return r.idField }

// Collection returns the resource's record collection.
func (r *Resource) Collection() *collection.Collection { return r.collection }

// Relations returns the declared relationship descriptors, in
// declaration order.
func (r *Resource) Relations() []*relation.Descriptor { return r.relations }

// RelationFields returns the local field names of the declared
// relationships, parallel to Relations.
func (r *Resource) RelationFields() []string { return r.relationFields }

// Get reads a field of a record of this resource. Computed relationship
// fields resolve their related records at this moment; any other field
// is a plain dotted-path read.
func (r *Resource) Get(rec record.Record, field string) (any, error) {
	if acc, ok := r.computed[field]; ok && acc.get != nil {
		return acc.get(rec)
	}
	return record.Get(rec, field), nil
}

// Set writes a field of a record of this resource. Assigning to a
// computed relationship field runs the relationship's assignment logic
// and returns the field's current resolved value, which may differ from
// the assigned one. Any other field is a plain dotted-path write
// returning the written value.
func (r *Resource) Set(rec record.Record, field string, value any) (any, error) {
	if acc, ok := r.computed[field]; ok && acc.set != nil {
		children, err := toRecords(field, value)
		if err != nil {
			return nil, err
		}
		return acc.set(rec, children)
	}
	record.Set(rec, field, value)
	return value, nil
}

// Export returns a detached copy of the record with enumerable computed
// fields resolved into it. Non-enumerable relationship fields are left
// out, so they do not leak into serialization.
func (r *Resource) Export(rec record.Record) (record.Record, error) {
	out := record.Clone(rec)
	fields := make([]string, 0, len(r.computed))
	for field := range r.computed {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		acc := r.computed[field]
		if !acc.enumerable || acc.get == nil {
			continue
		}
		children, err := acc.get(rec)
		if err != nil {
			return nil, err
		}
		record.Set(out, field, children)
	}
	return out, nil
}

// install places a computed accessor on the field table, overwriting any
// previous accessor for the field. A nil accessor reverts the field to
// plain data.
func (r *Resource) install(field string, acc *accessor) {
	if acc == nil {
		delete(r.computed, field)
		return
	}
	if r.computed == nil {
		r.computed = make(map[string]*accessor)
	}
	r.computed[field] = acc
}

// toRecords normalizes an assigned value into a record slice. A nil
// value is an empty assignment.
func toRecords(field string, value any) ([]record.Record, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []record.Record:
		return v, nil
	case []map[string]any:
		out := make([]record.Record, len(v))
		for i, m := range v {
			out[i] = record.Record(m)
		}
		return out, nil
	case []any:
		out := make([]record.Record, len(v))
		for i, e := range v {
			switch m := e.(type) {
			case record.Record:
				out[i] = m
			case map[string]any:
				out[i] = record.Record(m)
			default:
				return nil, &InvalidAssignError{Field: field, Value: e}
			}
		}
		return out, nil
	default:
		return nil, &InvalidAssignError{Field: field, Value: value}
	}
}
