// Package jsdata is an in-memory object-data-mapping layer: named
// resources own schemaless record collections, and resources declare
// lazily-resolved to-many relationships between each other.
//
// # Stores and resources
//
// A Store is a registry of resources. Each resource owns a collection
// of records keyed by a primary id field:
//
//	store := jsdata.New()
//	post := store.Define("post")
//	comment := store.Define("comment")
//
//	post.Collection().Insert(record.Record{"id": "p1", "title": "hello"})
//
// # Relationships
//
// A hasMany relationship installs a computed field on parent records.
// Reading the field through the resource resolves the related records at
// that moment; nothing is fetched at declaration or insertion time:
//
//	post.HasMany(comment, relation.HasMany().ForeignKey("postId"))
//
//	p, _ := post.Collection().Get("p1")
//	comments, _ := post.Get(p, "comments") // indexed lookup by "p1"
//
// Declaring a ForeignKey relationship creates a secondary index on the
// related collection, so resolution is sub-linear. See the
// schema/relation package for the three linking strategies and accessor
// overrides, and the schema package for declaring stores from YAML.
//
// # Concurrency
//
// Resource and relationship declaration is a setup-phase activity:
// declare everything before concurrent record access begins. Resolution
// is read-only on the parent record and relies on the collection's own
// locking; assignment mutates child records in place with no
// transactional coordination.
package jsdata
