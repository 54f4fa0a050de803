// Package query provides the query descriptor evaluated by in-memory
// collections. A query combines per-field where clauses with ordering
// and pagination:
//
//	q := &query.Query{
//		Where: query.Where{
//			"status": {EQ: "active"},
//			"tags":   {Contains: "go"},
//		},
//		OrderBy: []string{"-age", "name"},
//		Limit:   10,
//	}
//
// All clauses of a query must match (AND semantics). Contains matches
// element membership for list-valued fields and substring containment
// for string-valued fields.
package query

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/Sistemium/js-data/record"
)

// Query describes a predicate scan over a collection. The zero value
// matches every record.
type Query struct {
	// Where maps dotted field paths to the clause each must satisfy.
	Where Where

	// OrderBy lists the fields to sort by, in priority order. A "-"
	// prefix sorts the field descending.
	OrderBy []string

	// Skip drops the first n matched records after ordering.
	Skip int

	// Limit caps the number of returned records. Zero means no limit.
	Limit int
}

// Where maps field paths to clauses.
type Where map[string]Clause

// Clause is the set of conditions applied to a single field. All set
// conditions must hold. Unset conditions (nil or empty) are ignored.
type Clause struct {
	EQ       any
	NEQ      any
	In       []any
	NotIn    []any
	GT       any
	GTE      any
	LT       any
	LTE      any
	Contains any
	IsNil    *bool
}

// Match reports whether the record satisfies every clause of the query.
func (q *Query) Match(rec record.Record) bool {
	if q == nil {
		return true
	}
	for field, clause := range q.Where {
		if !clause.match(record.Get(rec, field)) {
			return false
		}
	}
	return true
}

// Apply evaluates the query against the given records: it filters by the
// where clauses, orders, and applies skip/limit. The result is always a
// non-nil slice and the input is never modified.
func (q *Query) Apply(recs []record.Record) []record.Record {
	out := make([]record.Record, 0, len(recs))
	for _, rec := range recs {
		if q.Match(rec) {
			out = append(out, rec)
		}
	}
	if q == nil {
		return out
	}
	if len(q.OrderBy) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			return q.less(out[i], out[j])
		})
	}
	if q.Skip > 0 {
		if q.Skip >= len(out) {
			return []record.Record{}
		}
		out = out[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out
}

// Key returns a deterministic string form of the query, suitable as a
// cache key. Two equivalent queries produce the same key.
func (q *Query) Key() string {
	if q == nil {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	fields := make([]string, 0, len(q.Where))
	for f := range q.Where {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for i, f := range fields {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%s:%s", f, q.Where[f].key())
	}
	b.WriteString("}")
	if len(q.OrderBy) > 0 {
		fmt.Fprintf(&b, "/order=%s", strings.Join(q.OrderBy, ","))
	}
	if q.Skip > 0 || q.Limit > 0 {
		fmt.Fprintf(&b, "/skip=%d,limit=%d", q.Skip, q.Limit)
	}
	return b.String()
}

func (c Clause) key() string {
	var parts []string
	add := func(op string, v any) {
		parts = append(parts, fmt.Sprintf("%s=%v", op, v))
	}
	if c.EQ != nil {
		add("eq", c.EQ)
	}
	if c.NEQ != nil {
		add("neq", c.NEQ)
	}
	if c.In != nil {
		add("in", c.In)
	}
	if c.NotIn != nil {
		add("notIn", c.NotIn)
	}
	if c.GT != nil {
		add("gt", c.GT)
	}
	if c.GTE != nil {
		add("gte", c.GTE)
	}
	if c.LT != nil {
		add("lt", c.LT)
	}
	if c.LTE != nil {
		add("lte", c.LTE)
	}
	if c.Contains != nil {
		add("contains", c.Contains)
	}
	if c.IsNil != nil {
		add("isNil", *c.IsNil)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (c Clause) match(v any) bool {
	if c.EQ != nil && !equal(v, c.EQ) {
		return false
	}
	if c.NEQ != nil && equal(v, c.NEQ) {
		return false
	}
	if c.In != nil && !in(v, c.In) {
		return false
	}
	if c.NotIn != nil && in(v, c.NotIn) {
		return false
	}
	if c.GT != nil {
		if n, ok := compare(v, c.GT); !ok || n <= 0 {
			return false
		}
	}
	if c.GTE != nil {
		if n, ok := compare(v, c.GTE); !ok || n < 0 {
			return false
		}
	}
	if c.LT != nil {
		if n, ok := compare(v, c.LT); !ok || n >= 0 {
			return false
		}
	}
	if c.LTE != nil {
		if n, ok := compare(v, c.LTE); !ok || n > 0 {
			return false
		}
	}
	if c.Contains != nil && !contains(v, c.Contains) {
		return false
	}
	if c.IsNil != nil && (v == nil) != *c.IsNil {
		return false
	}
	return true
}

func in(v any, vs []any) bool {
	for _, x := range vs {
		if equal(v, x) {
			return true
		}
	}
	return false
}

// contains matches list membership for slice values and substring
// containment for string values. Any other value type does not match.
func contains(v, needle any) bool {
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if equal(rv.Index(i).Interface(), needle) {
				return true
			}
		}
		return false
	case reflect.String:
		s, ok := needle.(string)
		return ok && strings.Contains(rv.String(), s)
	default:
		return false
	}
}

// equal compares two values, normalizing numeric types so that an int
// field matches a float64 condition and vice versa.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

// compare returns the ordering of a relative to b. The second return
// value is false when the values are not mutually comparable.
func compare(a, b any) (int, bool) {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs), true
	}
	return 0, false
}

func (q *Query) less(a, b record.Record) bool {
	for _, field := range q.OrderBy {
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		n, ok := compare(record.Get(a, field), record.Get(b, field))
		if !ok || n == 0 {
			continue
		}
		if desc {
			return n > 0
		}
		return n < 0
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
