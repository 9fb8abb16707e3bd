// Package pgslug stores slugs generated by pkg/sluggable in a PostgreSQL
// table through pgx/v5.
//
// A Table implements sluggable.Saver (writes the slug column by primary key)
// and sluggable.Finder (FindBySlug, SluggedList). Backfill walks a table and
// assigns slugs to rows that lack one, or regenerates all of them when the
// binding has Overwrite set.
//
//	behavior, _ := sluggable.NewBehavior(sluggable.NewConfig(sluggable.WithPattern(":title")))
//	articles, _ := pgslug.New(pool, "articles", behavior, pgslug.WithDisplay("title"))
//
//	n, err := articles.Backfill(ctx)
//	row, err := articles.FindBySlug(ctx, "dr-who")
//
// Table and column names are quoted with pgx.Identifier; values are always
// passed as query arguments.
package pgslug
