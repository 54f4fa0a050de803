// Package record provides the record value type shared by collections,
// resources and relationship resolution, together with generic dotted-path
// field accessors.
//
// Records are schemaless maps. Nested fields are addressed with dotted
// paths:
//
//	rec := record.Record{"author": map[string]any{"name": "a8m"}}
//	record.Get(rec, "author.name") // "a8m"
//	record.Set(rec, "author.email", "a8m@example.com")
//
// Set creates intermediate maps as needed. Get returns nil for any path
// that does not resolve.
package record

import "strings"

// Record is a single schemaless record. Field values are arbitrary;
// nested records are plain map[string]any values.
type Record map[string]any

// Get returns the value at the given dotted path, or nil if any segment
// of the path does not resolve to a map or is missing.
func Get(r Record, path string) any {
	if r == nil || path == "" {
		return nil
	}
	var cur any = map[string]any(r)
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

// Has reports whether the given dotted path resolves on the record.
// Unlike Get it distinguishes a field holding nil from a missing field.
func Has(r Record, path string) bool {
	if r == nil || path == "" {
		return false
	}
	var cur any = map[string]any(r)
	segs := strings.Split(path, ".")
	for i, seg := range segs {
		m, ok := asMap(cur)
		if !ok {
			return false
		}
		cur, ok = m[seg]
		if !ok {
			return false
		}
		if i == len(segs)-1 {
			return true
		}
	}
	return true
}

// Set writes the value at the given dotted path, creating intermediate
// maps for missing segments. Existing non-map intermediate values are
// replaced.
func Set(r Record, path string, value any) {
	if r == nil || path == "" {
		return
	}
	segs := strings.Split(path, ".")
	m := map[string]any(r)
	for _, seg := range segs[:len(segs)-1] {
		next, ok := asMap(m[seg])
		if !ok {
			next = make(map[string]any)
			m[seg] = next
		}
		m = next
	}
	m[segs[len(segs)-1]] = value
}

// Unset removes the value at the given dotted path. Intermediate maps
// are left in place.
func Unset(r Record, path string) {
	if r == nil || path == "" {
		return
	}
	segs := strings.Split(path, ".")
	m := map[string]any(r)
	for _, seg := range segs[:len(segs)-1] {
		next, ok := asMap(m[seg])
		if !ok {
			return
		}
		m = next
	}
	delete(m, segs[len(segs)-1])
}

// Clone returns a copy of the record. Nested maps are copied recursively;
// slice and scalar values are shared with the original.
func Clone(r Record) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		if m, ok := asMap(v); ok {
			out[k] = map[string]any(Clone(m))
		} else {
			out[k] = v
		}
	}
	return out
}

// asMap unwraps a value into a plain map[string]any. It accepts both the
// named Record type and raw maps, which show up after deserialization.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Record:
		return map[string]any(m), true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
