// Package slugcache caches slug lookups in front of a slugged table or
// collection.
//
// A Cache wraps any Store (pgslug.Table, mongoslug.Collection) and keeps
// FindBySlug and SluggedList results in a Backend: Memory for a single
// process, or Redis to share entries between processes.
//
//	table, _ := pgslug.New(pool, "articles", behavior)
//	cached, _ := slugcache.New(table, slugcache.NewMemory(1024, 5*time.Minute))
//
//	// Saves through the cache purge it.
//	err := behavior.AfterSave(ctx, rec, cached)
//
//	article, err := cached.FindBySlug(ctx, "hello-world")
//
// Any Save made through the Cache drops all entries. Writes that bypass it,
// such as Table.Backfill, should be followed by Invalidate.
//
// Entries are stamped with the backend generation observed before the store
// is read; a purge in between makes the write a no-op, so a lookup racing a
// save never caches the old record. Records are encoded by the store when it
// implements Codec (both bindings do), otherwise as JSON.
package slugcache
