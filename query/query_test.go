package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sistemium/js-data/query"
	"github.com/Sistemium/js-data/record"
)

func boolp(b bool) *bool { return &b }

func TestClauseMatch(t *testing.T) {
	t.Parallel()

	rec := record.Record{
		"name":   "a8m",
		"age":    30,
		"score":  32.5,
		"tags":   []any{"go", "orm"},
		"labels": []string{"alpha", "beta"},
		"bio":    "works on fb",
		"gone":   nil,
		"author": map[string]any{"name": "nata"},
	}

	tests := []struct {
		name    string
		where   query.Where
		matches bool
	}{
		{"eq_string", query.Where{"name": {EQ: "a8m"}}, true},
		{"eq_string_miss", query.Where{"name": {EQ: "nata"}}, false},
		{"eq_numeric_cross_type", query.Where{"age": {EQ: 30.0}}, true},
		{"eq_nested_path", query.Where{"author.name": {EQ: "nata"}}, true},
		{"neq", query.Where{"name": {NEQ: "nata"}}, true},
		{"neq_miss", query.Where{"name": {NEQ: "a8m"}}, false},
		{"in", query.Where{"name": {In: []any{"fb", "a8m"}}}, true},
		{"in_miss", query.Where{"name": {In: []any{"fb", "ent"}}}, false},
		{"not_in", query.Where{"name": {NotIn: []any{"fb", "ent"}}}, true},
		{"gt", query.Where{"age": {GT: 18}}, true},
		{"gt_miss", query.Where{"age": {GT: 30}}, false},
		{"gte", query.Where{"age": {GTE: 30}}, true},
		{"lt", query.Where{"score": {LT: 32.6}}, true},
		{"lte_miss", query.Where{"score": {LTE: 32.4}}, false},
		{"gt_incomparable", query.Where{"name": {GT: 18}}, false},
		{"contains_list", query.Where{"tags": {Contains: "go"}}, true},
		{"contains_list_miss", query.Where{"tags": {Contains: "sql"}}, false},
		{"contains_typed_list", query.Where{"labels": {Contains: "beta"}}, true},
		{"contains_substring", query.Where{"bio": {Contains: "fb"}}, true},
		{"contains_scalar_field", query.Where{"age": {Contains: 30}}, false},
		{"contains_missing_field", query.Where{"missing": {Contains: "x"}}, false},
		{"is_nil", query.Where{"gone": {IsNil: boolp(true)}}, true},
		{"is_not_nil", query.Where{"name": {IsNil: boolp(false)}}, true},
		{"is_nil_miss", query.Where{"name": {IsNil: boolp(true)}}, false},
		{"and_semantics", query.Where{"name": {EQ: "a8m"}, "age": {GT: 40}}, false},
		{"empty_where", query.Where{}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := &query.Query{Where: tt.where}
			assert.Equal(t, tt.matches, q.Match(rec))
		})
	}

	t.Run("nil_query_matches", func(t *testing.T) {
		t.Parallel()
		var q *query.Query
		assert.True(t, q.Match(rec))
	})
}

func TestApply(t *testing.T) {
	t.Parallel()

	recs := []record.Record{
		{"id": "1", "name": "carl", "age": 40},
		{"id": "2", "name": "ann", "age": 25},
		{"id": "3", "name": "bob", "age": 25},
		{"id": "4", "name": "dina", "age": 19},
	}

	t.Run("filter_only", func(t *testing.T) {
		t.Parallel()
		q := &query.Query{Where: query.Where{"age": {EQ: 25}}}
		out := q.Apply(recs)
		require.Len(t, out, 2)
		assert.Equal(t, "ann", out[0]["name"])
		assert.Equal(t, "bob", out[1]["name"])
	})

	t.Run("order_by", func(t *testing.T) {
		t.Parallel()
		q := &query.Query{OrderBy: []string{"age", "name"}}
		out := q.Apply(recs)
		require.Len(t, out, 4)
		assert.Equal(t, []any{"dina", "ann", "bob", "carl"},
			[]any{out[0]["name"], out[1]["name"], out[2]["name"], out[3]["name"]})
	})

	t.Run("order_by_descending", func(t *testing.T) {
		t.Parallel()
		q := &query.Query{OrderBy: []string{"-age"}}
		out := q.Apply(recs)
		require.Len(t, out, 4)
		assert.Equal(t, "carl", out[0]["name"])
		assert.Equal(t, "dina", out[3]["name"])
	})

	t.Run("skip_and_limit", func(t *testing.T) {
		t.Parallel()
		q := &query.Query{OrderBy: []string{"name"}, Skip: 1, Limit: 2}
		out := q.Apply(recs)
		require.Len(t, out, 2)
		assert.Equal(t, "bob", out[0]["name"])
		assert.Equal(t, "carl", out[1]["name"])
	})

	t.Run("skip_past_end", func(t *testing.T) {
		t.Parallel()
		q := &query.Query{Skip: 10}
		out := q.Apply(recs)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("input_not_modified", func(t *testing.T) {
		t.Parallel()
		q := &query.Query{OrderBy: []string{"age"}}
		q.Apply(recs)
		assert.Equal(t, "carl", recs[0]["name"])
	})

	t.Run("nil_query_returns_all", func(t *testing.T) {
		t.Parallel()
		var q *query.Query
		assert.Len(t, q.Apply(recs), 4)
	})
}

func TestKey(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		q1 := &query.Query{Where: query.Where{"a": {EQ: 1}, "b": {Contains: "x"}}}
		q2 := &query.Query{Where: query.Where{"b": {Contains: "x"}, "a": {EQ: 1}}}
		assert.Equal(t, q1.Key(), q2.Key())
	})

	t.Run("distinguishes_queries", func(t *testing.T) {
		t.Parallel()
		q1 := &query.Query{Where: query.Where{"a": {EQ: 1}}}
		q2 := &query.Query{Where: query.Where{"a": {EQ: 2}}}
		q3 := &query.Query{Where: query.Where{"a": {NEQ: 1}}}
		assert.NotEqual(t, q1.Key(), q2.Key())
		assert.NotEqual(t, q1.Key(), q3.Key())
	})

	t.Run("pagination_and_order", func(t *testing.T) {
		t.Parallel()
		q1 := &query.Query{OrderBy: []string{"-age"}, Limit: 10}
		q2 := &query.Query{OrderBy: []string{"-age"}}
		assert.NotEqual(t, q1.Key(), q2.Key())
	})

	t.Run("nil_query", func(t *testing.T) {
		t.Parallel()
		var q *query.Query
		assert.Equal(t, "{}", q.Key())
	})
}
