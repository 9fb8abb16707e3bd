package sluggable

import "context"

// Entry pairs a slug with the display value of its record.
type Entry struct {
	Slug string `json:"slug" bson:"slug"`
	Name string `json:"name" bson:"name"`
}

// Finder looks records up by slug. Storage bindings implement it.
type Finder interface {
	// FindBySlug returns the first record whose slug field equals slug,
	// or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (Map, error)
	// SluggedList returns slug/display pairs for every record that has a slug.
	SluggedList(ctx context.Context) ([]Entry, error)
}
