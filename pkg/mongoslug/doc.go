// Package mongoslug stores slugs generated by pkg/sluggable in a MongoDB
// collection.
//
// Collection implements sluggable.Saver and sluggable.Finder with the same
// semantics as pkg/pgslug: Save sets the slug field by key, FindBySlug and
// SluggedList query it, and Backfill assigns slugs to existing documents.
// Documents are addressed by "_id" unless WithKey says otherwise.
package mongoslug
