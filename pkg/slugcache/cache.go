package slugcache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/sluggable/pkg/logger"
	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

const listKey = "list"

// Store is a slugged table or collection: pgslug.Table and
// mongoslug.Collection both satisfy it.
type Store interface {
	sluggable.Finder
	sluggable.Saver
}

// Codec serializes records for the Backend. A Store that implements it
// controls which Go types a cache hit returns: mongoslug.Collection keeps BSON
// types such as ObjectID, pgslug.Table stores text values that pgx binds
// back to any column type. Other stores fall back to JSON, where numbers decode
// as json.Number.
type Codec interface {
	EncodeRecord(rec sluggable.Map) ([]byte, error)
	DecodeRecord(b []byte) (sluggable.Map, error)
}

type jsonCodec struct{}

func (jsonCodec) EncodeRecord(rec sluggable.Map) ([]byte, error) {
	return json.Marshal(rec)
}

func (jsonCodec) DecodeRecord(b []byte) (sluggable.Map, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var rec sluggable.Map
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Cache serves FindBySlug and SluggedList from a Backend and falls through to
// the wrapped Store on a miss. Saves made through the Cache purge the backend,
// so a record returned by FindBySlug can be passed to
// sluggable.Behavior.AfterSave with the Cache as the Saver.
// Backend failures are logged and never fail a lookup.
type Cache struct {
	store   Store
	codec   Codec
	backend Backend
	log     *slog.Logger
}

type Option func(*Cache)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

func New(store Store, backend Backend, opts ...Option) (*Cache, error) {
	if store == nil || backend == nil {
		return nil, errors.Join(ErrInvalidCache, errors.New("store and backend are required"))
	}
	c := &Cache{store: store, codec: jsonCodec{}, backend: backend, log: logger.Discard()}
	if codec, ok := store.(Codec); ok {
		c.codec = codec
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("slugcache"))
	return c, nil
}

// FindBySlug returns the cached record for slug, loading it from the store on
// a miss. sluggable.ErrNotFound results are not cached.
func (c *Cache) FindBySlug(ctx context.Context, slug string) (sluggable.Map, error) {
	key := "find:" + slug

	gen, cached := c.load(ctx, key)
	if cached != nil {
		rec, err := c.codec.DecodeRecord(cached)
		if err == nil {
			return rec, nil
		}
		c.log.WarnContext(ctx, "cache entry is corrupt", logger.Key(key), logger.Error(err))
	}

	rec, err := c.store.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	b, err := c.codec.EncodeRecord(rec)
	c.remember(ctx, gen, key, b, err)
	return rec, nil
}

// SluggedList returns the cached slug list, loading it on a miss.
func (c *Cache) SluggedList(ctx context.Context) ([]sluggable.Entry, error) {
	gen, cached := c.load(ctx, listKey)
	if cached != nil {
		var list []sluggable.Entry
		err := json.Unmarshal(cached, &list)
		if err == nil {
			return list, nil
		}
		c.log.WarnContext(ctx, "cache entry is corrupt", logger.Key(listKey), logger.Error(err))
	}

	list, err := c.store.SluggedList(ctx)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(list)
	c.remember(ctx, gen, listKey, b, err)
	return list, nil
}

// Save writes through to the store and purges the cache, so it can be handed
// to sluggable.Behavior.AfterSave in place of the store.
func (c *Cache) Save(ctx context.Context, rec sluggable.MutableRecord) error {
	if err := c.store.Save(ctx, rec); err != nil {
		return err
	}
	if err := c.Invalidate(ctx); err != nil {
		c.log.WarnContext(ctx, "cache purge failed", logger.Error(err))
	}
	return nil
}

// Invalidate drops every cached lookup. Call it after writes that bypass the
// Cache, such as a store Backfill.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.backend.Purge(ctx)
}

// load reads key under the current generation. It returns gen < 0 when the
// generation is unknown, in which case nothing may be written back.
func (c *Cache) load(ctx context.Context, key string) (int64, []byte) {
	gen, err := c.backend.Generation(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "cache read failed", logger.Key(key), logger.Error(err))
		return -1, nil
	}

	b, err := c.backend.Get(ctx, gen, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.log.WarnContext(ctx, "cache read failed", logger.Key(key), logger.Error(err))
		}
		return gen, nil
	}
	return gen, b
}

// remember stores an encoded value under the generation observed before the
// store was read, so a purge that happens in between wins.
func (c *Cache) remember(ctx context.Context, gen int64, key string, b []byte, encodeErr error) {
	if gen < 0 {
		return
	}
	err := encodeErr
	if err == nil {
		err = c.backend.Set(ctx, gen, key, b)
	}
	if err != nil {
		c.log.WarnContext(ctx, "cache write failed", logger.Key(key), logger.Error(err))
	}
}
