package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/sluggable/pkg/config"
	"github.com/dmitrymomot/sluggable/pkg/logger"
	"github.com/dmitrymomot/sluggable/pkg/mongo"
	"github.com/dmitrymomot/sluggable/pkg/mongoslug"
	"github.com/dmitrymomot/sluggable/pkg/pg"
	"github.com/dmitrymomot/sluggable/pkg/pgslug"
	"github.com/dmitrymomot/sluggable/pkg/redis"
	"github.com/dmitrymomot/sluggable/pkg/slugcache"
	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

// slugStore is implemented by pgslug.Table and mongoslug.Collection.
type slugStore interface {
	slugcache.Store
	Backfill(ctx context.Context) (int, error)
}

type storeOptions struct {
	driver  string
	table   string
	key     string
	display string
	migrate bool
	slug    sluggable.Config
}

// register adds the flags shared by the storage subcommands.
func (o *storeOptions) register(fs *flag.FlagSet, defaults sluggable.Config) {
	o.slug = defaults
	fs.StringVar(&o.driver, "driver", "pg", "storage driver: pg or mongo")
	fs.StringVar(&o.table, "table", "", "table or collection name")
	fs.StringVar(&o.key, "key", "", "primary key column (default id for pg, _id for mongo)")
	fs.StringVar(&o.display, "display", "name", "display column")
	fs.StringVar(&o.slug.Pattern, "pattern", defaults.Pattern, "slug pattern with :placeholders")
	fs.StringVar(&o.slug.Field, "field", defaults.Field, "slug column")
	fs.StringVar(&o.slug.Replacement, "sep", defaults.Replacement, "word separator")
}

func (o *storeOptions) validate() error {
	if o.table == "" {
		return errors.Join(errUsage, errors.New("-table is required"))
	}
	switch o.driver {
	case "pg", "mongo":
	default:
		return errors.Join(errUsage, fmt.Errorf("unknown driver %q", o.driver))
	}
	if o.migrate && o.driver != "pg" {
		return errors.Join(errUsage, errors.New("-migrate is only supported with -driver pg"))
	}
	if err := o.slug.Validate(); err != nil {
		return errors.Join(errUsage, err)
	}
	return nil
}

// openStore connects to the configured driver. The returned func releases
// the connection.
func openStore(ctx context.Context, opts storeOptions, behavior *sluggable.Behavior, log *slog.Logger) (slugStore, func(), error) {
	switch opts.driver {
	case "mongo":
		return openMongo(ctx, opts, behavior, log)
	default:
		return openPostgres(ctx, opts, behavior, log)
	}
}

func openPostgres(ctx context.Context, opts storeOptions, behavior *sluggable.Behavior, log *slog.Logger) (slugStore, func(), error) {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if opts.migrate {
		if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	tableOpts := []pgslug.Option{pgslug.WithDisplay(opts.display), pgslug.WithLogger(log)}
	if opts.key != "" {
		tableOpts = append(tableOpts, pgslug.WithKey(opts.key))
	}
	table, err := pgslug.New(pool, opts.table, behavior, tableOpts...)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return table, pool.Close, nil
}

func openMongo(ctx context.Context, opts storeOptions, behavior *sluggable.Behavior, log *slog.Logger) (slugStore, func(), error) {
	var cfg mongo.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}

	db, err := mongo.NewWithDatabase(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	disconnect := func() {
		if err := db.Client().Disconnect(context.WithoutCancel(ctx)); err != nil {
			log.WarnContext(ctx, "failed to disconnect from mongo", logger.Error(err))
		}
	}

	collOpts := []mongoslug.Option{mongoslug.WithDisplay(opts.display), mongoslug.WithLogger(log)}
	if opts.key != "" {
		collOpts = append(collOpts, mongoslug.WithKey(opts.key))
	}
	coll, err := mongoslug.New(db.Collection(opts.table), behavior, collOpts...)
	if err != nil {
		disconnect()
		return nil, nil, err
	}
	return coll, disconnect, nil
}

// cachePrefix namespaces cached lookups by everything that shapes them: the
// store, the key, slug and display columns.
func cachePrefix(base string, opts storeOptions) string {
	key := opts.key
	switch {
	case key != "":
	case opts.driver == "mongo":
		key = "_id"
	default:
		key = "id"
	}
	return strings.Join([]string{base, opts.driver, opts.table, key, opts.slug.Field, opts.display}, ":")
}

// openCache returns a Redis-backed cache over store when REDIS_URL is set,
// and nil otherwise. The returned func closes the Redis client.
func openCache(ctx context.Context, store slugStore, opts storeOptions, log *slog.Logger) (*slugcache.Cache, func(), error) {
	if os.Getenv("REDIS_URL") == "" {
		return nil, func() {}, nil
	}

	var cfg redis.Config
	if err := config.Load(&cfg); err != nil {
		return nil, nil, err
	}
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() {
		if err := client.Close(); err != nil {
			log.WarnContext(ctx, "failed to close redis client", logger.Error(err))
		}
	}

	cache, err := slugcache.New(store, slugcache.NewRedis(client, cachePrefix(cfg.KeyPrefix, opts), cfg.TTL), slugcache.WithLogger(log))
	if err != nil {
		closeClient()
		return nil, nil, err
	}
	return cache, closeClient, nil
}
