package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

type lookupOptions struct {
	storeOptions
	target string
}

func parseLookup(args []string, defaults sluggable.Config) (lookupOptions, error) {
	var opts lookupOptions

	fs := flag.NewFlagSet("slugify lookup", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts.register(fs, defaults)
	if err := fs.Parse(args); err != nil {
		return opts, errors.Join(errUsage, err)
	}
	switch fs.NArg() {
	case 0:
	case 1:
		opts.target = fs.Arg(0)
	default:
		return opts, errors.Join(errUsage, fmt.Errorf("unexpected argument %q", fs.Arg(1)))
	}
	return opts, opts.validate()
}

// runLookup prints the record stored under a slug as JSON, or the whole slug
// list as "slug<TAB>name" lines when no slug is given. Lookups go through the
// Redis cache when REDIS_URL is set.
func runLookup(ctx context.Context, args []string, stdout io.Writer, log *slog.Logger) error {
	defaults, err := loadSlugConfig()
	if err != nil {
		return err
	}
	opts, err := parseLookup(args, defaults)
	if err != nil {
		return err
	}
	ctx = withTable(ctx, opts.table)

	behavior, err := sluggable.NewBehavior(opts.storeOptions.slug, sluggable.WithLogger(log))
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, opts.storeOptions, behavior, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var finder sluggable.Finder = store
	cache, closeCache, err := openCache(ctx, store, opts.storeOptions, log)
	if err != nil {
		return err
	}
	defer closeCache()
	if cache != nil {
		finder = cache
	}

	if opts.target == "" {
		list, err := finder.SluggedList(ctx)
		if err != nil {
			return err
		}
		for _, e := range list {
			if _, err := fmt.Fprintf(stdout, "%s\t%s\n", e.Slug, e.Name); err != nil {
				return err
			}
		}
		return nil
	}

	rec, err := finder.FindBySlug(ctx, opts.target)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
