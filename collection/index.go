package collection

import (
	"reflect"

	"github.com/Sistemium/js-data/record"
)

// index is a secondary index over one record field. For each distinct
// field value it keeps the ids of the records holding it, in insertion
// order.
type index struct {
	field string
	ids   map[any][]any
}

func newIndex(field string) *index {
	return &index{field: field, ids: make(map[any][]any)}
}

func (ix *index) add(rec record.Record, id any) {
	key, ok := indexable(record.Get(rec, ix.field))
	if !ok {
		return
	}
	ix.ids[key] = append(ix.ids[key], id)
}

func (ix *index) remove(rec record.Record, id any) {
	key, ok := indexable(record.Get(rec, ix.field))
	if !ok {
		return
	}
	ids := ix.ids[key]
	for i, x := range ids {
		if x == id {
			ix.ids[key] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(ix.ids[key]) == 0 {
		delete(ix.ids, key)
	}
}

// indexable reports whether a field value can serve as an index key.
// Non-comparable values (slices, maps) are left out of the index.
func indexable(v any) (any, bool) {
	if v == nil {
		return nil, true
	}
	if !reflect.TypeOf(v).Comparable() {
		return nil, false
	}
	return v, true
}
