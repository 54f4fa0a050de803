package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sistemium/js-data/schema"
	"github.com/Sistemium/js-data/schema/relation"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		sc, err := schema.Parse([]byte(`
resources:
  - name: post
    hasMany:
      - related: comment
        foreignKey: postId
      - related: tag
        localKeys: tagIds
        localField: tags
        enumerable: true
  - name: comment
  - name: tag
    idField: uuid
`))
		require.NoError(t, err)
		require.Len(t, sc.Resources, 3)

		post := sc.Resources[0]
		assert.Equal(t, "post", post.Name)
		require.Len(t, post.HasMany, 2)
		assert.Equal(t, "comment", post.HasMany[0].Related)
		assert.Equal(t, "postId", post.HasMany[0].ForeignKey)
		assert.Equal(t, "tagIds", post.HasMany[1].LocalKeys)
		assert.True(t, post.HasMany[1].Enumerable)

		assert.Equal(t, "uuid", sc.Resources[2].IDField)
	})

	t.Run("link_tristate", func(t *testing.T) {
		t.Parallel()
		sc, err := schema.Parse([]byte(`
resources:
  - name: post
    hasMany:
      - related: comment
        link: false
      - related: tag
        localKeys: tagIds
`))
		require.NoError(t, err)
		hm := sc.Resources[0].HasMany
		require.Len(t, hm, 2)
		require.NotNil(t, hm[0].Link)
		assert.False(t, *hm[0].Link)
		assert.Nil(t, hm[1].Link, "omitted link stays unset so the store default applies")
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		t.Parallel()
		_, err := schema.Parse([]byte("resources: [}"))
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name string
			doc  string
		}{
			{
				name: "resource_without_name",
				doc: `
resources:
  - idField: uuid
`,
			},
			{
				name: "duplicate_resource",
				doc: `
resources:
  - name: post
  - name: post
`,
			},
			{
				name: "has_many_without_related",
				doc: `
resources:
  - name: post
    hasMany:
      - foreignKey: postId
`,
			},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				_, err := schema.Parse([]byte(tt.doc))
				require.Error(t, err)
				assert.ErrorIs(t, err, schema.ErrInvalidSchema)
			})
		}
	})
}

func TestHasManyDefBuilder(t *testing.T) {
	t.Parallel()

	t.Run("maps_all_options", func(t *testing.T) {
		t.Parallel()
		link := false
		def := schema.HasManyDef{
			Related:    "comment",
			LocalField: "notes",
			ForeignKey: "postId",
			Enumerable: true,
			Link:       &link,
		}
		d := def.Builder().Descriptor()
		assert.Equal(t, relation.KindHasMany, d.Kind)
		assert.Equal(t, "notes", d.LocalField)
		assert.Equal(t, "postId", d.ForeignKey)
		assert.True(t, d.Enumerable)
		require.NotNil(t, d.Link)
		assert.False(t, *d.Link)
	})

	t.Run("empty_def_keeps_builder_defaults", func(t *testing.T) {
		t.Parallel()
		d := schema.HasManyDef{Related: "comment"}.Builder().Descriptor()
		assert.Empty(t, d.LocalField)
		assert.Empty(t, d.ForeignKey)
		assert.False(t, d.Enumerable)
		assert.Nil(t, d.Link)
	})

	t.Run("local_keys", func(t *testing.T) {
		t.Parallel()
		d := schema.HasManyDef{Related: "tag", LocalKeys: "tagIds"}.Builder().Descriptor()
		assert.Equal(t, "tagIds", d.LocalKeys)
		assert.Empty(t, d.ForeignKey)
	})
}
