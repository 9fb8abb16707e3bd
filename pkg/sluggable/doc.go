// Package sluggable generates slugs for records from a ":placeholder" template.
//
// A Record is anything that can look up a field by name: Map, a struct
// projected with FromStruct, or a RecordFunc. Interpolate resolves the
// placeholders of a template against a record, and Generate normalizes the
// interpolated text into a slug with pkg/slug:
//
//	sluggable.Generate(":id-:name", sluggable.Map{"id": 123, "name": "abc"}, "-")
//	// "123-abc"
//
// # Overwrite policy
//
// A Generator binds a Config (pattern, slug field, separator, overwrite). When
// the record already has a non-empty slug and Overwrite is false, the existing
// slug is returned unchanged, so slugs stay stable once assigned. With
// Overwrite the slug is rebuilt from the current field values every time.
//
// # Save pipeline
//
// Behavior connects a Generator to a persistence layer. BeforeSave sets the
// slug field before the record is written. AfterSave mirrors a post-save hook:
// when the slug changed it assigns the field and asks the Saver for one more
// save, which is not repeated on the nested call.
//
// Storage bindings for PostgreSQL and MongoDB live in pkg/pgslug and
// pkg/mongoslug and implement Saver and Finder.
package sluggable
