package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/sluggable/pkg/logger"
	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

func parseBackfill(args []string, defaults sluggable.Config) (storeOptions, error) {
	var opts storeOptions

	fs := flag.NewFlagSet("slugify backfill", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts.register(fs, defaults)
	fs.BoolVar(&opts.migrate, "migrate", false, "apply goose migrations before the backfill (pg only)")
	fs.BoolVar(&opts.slug.Overwrite, "overwrite", defaults.Overwrite, "regenerate existing slugs")
	if err := fs.Parse(args); err != nil {
		return opts, errors.Join(errUsage, err)
	}
	if fs.NArg() > 0 {
		return opts, errors.Join(errUsage, fmt.Errorf("unexpected argument %q", fs.Arg(0)))
	}
	return opts, opts.validate()
}

func runBackfill(ctx context.Context, args []string, stdout io.Writer, log *slog.Logger) error {
	defaults, err := loadSlugConfig()
	if err != nil {
		return err
	}
	opts, err := parseBackfill(args, defaults)
	if err != nil {
		return err
	}
	ctx = withTable(ctx, opts.table)

	behavior, err := sluggable.NewBehavior(opts.slug, sluggable.WithLogger(log))
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, opts, behavior, log)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := store.Backfill(ctx)
	if err != nil {
		return err
	}

	if n > 0 {
		cache, closeCache, err := openCache(ctx, store, opts, log)
		if err != nil {
			log.WarnContext(ctx, "slug cache unavailable, not invalidated", logger.Error(err))
		} else if cache != nil {
			defer closeCache()
			if err := cache.Invalidate(ctx); err != nil {
				log.WarnContext(ctx, "slug cache invalidation failed", logger.Error(err))
			}
		}
	}

	_, err = fmt.Fprintf(stdout, "%d updated\n", n)
	return err
}
