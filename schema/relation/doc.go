// Package relation provides fluent builders for declaring to-many
// relationships between resources.
//
// A hasMany relationship resolves the related records of a parent record
// lazily, on first access of its local field. How the related records are
// located is determined by the linking strategy, chosen once at
// declaration time:
//
//   - ForeignKey: related records carry the parent's primary key in a
//     field of their own. Resolution is an indexed lookup on the related
//     collection (the fast path). This is the default; when no key option
//     is given the field name is synthesized from the parent type name.
//
//   - LocalKeys: the parent record stores the list of related record ids.
//     Resolution is a batch fetch by id (the medium path).
//
//   - ForeignKeys: related records store a list of parent ids. Resolution
//     scans the whole related collection (the slow path), for many-to-many
//     shapes without an id list on the parent.
//
// # Declaring relationships
//
//	post := store.Define("post")
//	comment := store.Define("comment")
//
//	// ForeignKey, synthesized as "postId":
//	post.HasMany(comment, relation.HasMany())
//
//	// Explicit foreign key and local field:
//	post.HasMany(comment, relation.HasMany().
//		ForeignKey("postId").
//		LocalField("comments"))
//
//	// LocalKeys: post records carry a "tagIds" list.
//	post.HasMany(tag, relation.HasMany().LocalKeys("tagIds"))
//
// # Overriding accessors
//
// Custom get and set functions wrap the default resolution logic and
// receive it as a trailing delegate, so they can decorate it selectively:
//
//	post.HasMany(comment, relation.HasMany().
//		Get(func(parent record.Record, next relation.Getter) ([]record.Record, error) {
//			children, err := next(parent)
//			// ...
//			return children, err
//		}))
//
// When linking is disabled the delegate is nil.
package relation
