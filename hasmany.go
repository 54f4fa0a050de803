package jsdata

import (
	"reflect"
	"sort"

	"github.com/go-openapi/inflect"

	"github.com/Sistemium/js-data/query"
	"github.com/Sistemium/js-data/record"
	"github.com/Sistemium/js-data/schema/relation"
)

// HasMany declares a to-many relationship from this resource to the
// related one and returns the receiver, so declarations chain:
//
//	post.
//		HasMany(comment, relation.HasMany().ForeignKey("postId")).
//		HasMany(tag, relation.HasMany().LocalKeys("tagIds"))
//
// A nil builder declares the relationship with default options. The
// linking strategy is frozen here, in priority order: an explicit (or
// synthesized) foreign key wins over local keys, which win over foreign
// keys. With the ForeignKey strategy a secondary index is ensured on the
// related collection, so resolution is an indexed lookup rather than a
// scan.
//
// The relationship's local field is installed on this resource's
// computed-field table; re-declaring the same local field overwrites the
// installed accessor (last write wins) but still appends to the
// relationship registry. HasMany panics when related is nil or when the
// related collection fails to create the supporting index: declaration
// is a setup-phase activity and both are configuration errors.
func (r *Resource) HasMany(related *Resource, b *relation.HasManyBuilder) *Resource {
	if related == nil {
		panic("jsdata: HasMany requires a related resource")
	}
	if b == nil {
		b = relation.HasMany()
	}
	d := b.Descriptor()
	d.Kind = relation.KindHasMany
	d.Parent = r.name
	d.Related = related.name

	// Strategy selection, first match wins. With no key option at all
	// the foreign key is synthesized from the parent name.
	if d.ForeignKey == "" && d.LocalKeys == "" && d.ForeignKeys == "" {
		d.ForeignKey = inflect.CamelizeDownFirst(r.name) + "Id"
	}
	switch {
	case d.ForeignKey != "":
		d.Strategy = relation.ForeignKey
		d.StrategyField = d.ForeignKey
		if err := related.collection.CreateIndex(d.ForeignKey); err != nil {
			panic(err)
		}
	case d.LocalKeys != "":
		d.Strategy = relation.LocalKeys
		d.StrategyField = d.LocalKeys
	default:
		d.Strategy = relation.ForeignKeys
		d.StrategyField = d.ForeignKeys
	}
	if d.LocalField == "" {
		d.LocalField = inflect.CamelizeDownFirst(inflect.Pluralize(related.name))
	}
	d.Linked = r.store.linkRelations
	if d.Link != nil {
		d.Linked = *d.Link
	}

	get, set := r.buildAccessors(related, d)
	if get == nil && set == nil {
		// Plain writable field: clear any previously installed accessor.
		r.install(d.LocalField, nil)
	} else {
		r.install(d.LocalField, &accessor{get: get, set: set, enumerable: d.Enumerable})
	}

	r.relations = append(r.relations, d)
	r.relationFields = append(r.relationFields, d.LocalField)
	return r
}

// buildAccessors constructs the get/set closure pair for a resolved
// descriptor. Both are nil when linking is disabled and no overrides are
// supplied.
func (r *Resource) buildAccessors(related *Resource, d *relation.Descriptor) (relation.Getter, relation.Setter) {
	var defGet relation.Getter
	var defSet relation.Setter

	// get is the final installed getter; the default setter re-reads
	// through it so assignment returns what a subsequent read would.
	var get relation.Getter

	if d.Linked {
		defGet = r.defaultGetter(related, d)
		defSet = r.defaultSetter(related, d, func(parent record.Record) ([]record.Record, error) {
			return get(parent)
		})
	}

	get = defGet
	if d.Get != nil {
		custom, next := d.Get, defGet
		get = func(parent record.Record) ([]record.Record, error) {
			return custom(parent, next)
		}
	}
	set := defSet
	if d.Set != nil {
		custom, next := d.Set, defSet
		set = func(parent record.Record, children []record.Record) ([]record.Record, error) {
			return custom(parent, children, next)
		}
	}
	return get, set
}

// defaultGetter returns the resolution closure for the descriptor's
// strategy. It is side-effect-free on the parent record; collection
// failures propagate unchanged.
func (r *Resource) defaultGetter(related *Resource, d *relation.Descriptor) relation.Getter {
	var coll relation.Collection = related.collection
	switch d.Strategy {
	case relation.ForeignKey:
		field := d.StrategyField
		return func(parent record.Record) ([]record.Record, error) {
			return coll.GetAll([]any{record.Get(parent, r.idField)}, field)
		}
	case relation.LocalKeys:
		field := d.StrategyField
		return func(parent record.Record) ([]record.Record, error) {
			ids := normalizeKeys(record.Get(parent, field))
			if len(ids) == 0 {
				return []record.Record{}, nil
			}
			return coll.GetAll(ids, "")
		}
	default: // relation.ForeignKeys
		field := d.StrategyField
		return func(parent record.Record) ([]record.Record, error) {
			return coll.Filter(&query.Query{
				Where: query.Where{field: {Contains: record.Get(parent, r.idField)}},
			})
		}
	}
}

// defaultSetter returns the assignment closure for the descriptor's
// strategy. Assignment mutates the given child records in place; writing
// them back to the related collection is the caller's concern. After
// mutation the setter re-reads the relationship through resolve, so the
// returned value is the field's current resolved state, not the input.
func (r *Resource) defaultSetter(related *Resource, d *relation.Descriptor, resolve relation.Getter) relation.Setter {
	field := d.StrategyField
	switch d.Strategy {
	case relation.ForeignKey:
		return func(parent record.Record, children []record.Record) ([]record.Record, error) {
			if len(children) == 0 {
				return resolve(parent)
			}
			id := record.Get(parent, r.idField)
			for _, child := range children {
				record.Set(child, field, id)
			}
			return resolve(parent)
		}
	case relation.LocalKeys:
		return func(parent record.Record, children []record.Record) ([]record.Record, error) {
			if len(children) == 0 {
				return resolve(parent)
			}
			ids := make([]any, 0, len(children))
			for _, child := range children {
				if id := record.Get(child, related.idField); id != nil {
					ids = append(ids, id)
				}
			}
			record.Set(parent, field, ids)
			return resolve(parent)
		}
	default: // relation.ForeignKeys
		return func(parent record.Record, children []record.Record) ([]record.Record, error) {
			if len(children) == 0 {
				return resolve(parent)
			}
			id := record.Get(parent, r.idField)
			for _, child := range children {
				ids := normalizeKeys(record.Get(child, field))
				if idsContain(ids, id) {
					continue
				}
				record.Set(child, field, append(ids, id))
			}
			return resolve(parent)
		}
	}
}

// normalizeKeys turns a stored key-list value into a flat id slice. Both
// list forms and mappings are accepted; for a mapping the key set is the
// id list, sorted for determinism. Anything else is an empty list.
func normalizeKeys(v any) []any {
	if v == nil {
		return nil
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k
		}
		return out
	default:
		return nil
	}
}

func idsContain(ids []any, id any) bool {
	if id == nil || !reflect.TypeOf(id).Comparable() {
		return false
	}
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
