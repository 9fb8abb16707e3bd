package slugcache_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sluggable/pkg/logger"
	"github.com/dmitrymomot/sluggable/pkg/slugcache"
	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

// countingStore is an in-memory Store that counts lookups.
type countingStore struct {
	rows  map[string]sluggable.Map
	finds int
	lists int
	saves int
}

func newCountingStore() *countingStore {
	return &countingStore{rows: map[string]sluggable.Map{
		"1": {"id": "1", "name": "Hello World", "slug": "hello-world"},
	}}
}

func (s *countingStore) FindBySlug(_ context.Context, slug string) (sluggable.Map, error) {
	s.finds++
	for _, row := range s.rows {
		if row["slug"] == slug {
			return row, nil
		}
	}
	return nil, sluggable.ErrNotFound
}

func (s *countingStore) SluggedList(context.Context) ([]sluggable.Entry, error) {
	s.lists++
	var list []sluggable.Entry
	for _, row := range s.rows {
		list = append(list, sluggable.Entry{
			Slug: sluggable.FieldString(row, "slug"),
			Name: sluggable.FieldString(row, "name"),
		})
	}
	return list, nil
}

func (s *countingStore) Save(_ context.Context, rec sluggable.MutableRecord) error {
	s.saves++
	id := sluggable.FieldString(rec, "id")
	row := sluggable.Map{}
	for _, name := range []string{"id", "name", "slug"} {
		v, _ := rec.Get(name)
		row[name] = v
	}
	s.rows[id] = row
	return nil
}

// typedStore keeps non-JSON types in its records and round-trips them
// through its own codec.
type typedStore struct {
	*countingStore
	encodes int
}

type recordID [4]byte

func (s *typedStore) EncodeRecord(rec sluggable.Map) ([]byte, error) {
	s.encodes++
	id := rec["id"].(recordID)
	return append(id[:], sluggable.FieldString(rec, "slug")...), nil
}

func (s *typedStore) DecodeRecord(b []byte) (sluggable.Map, error) {
	if len(b) < 4 {
		return nil, errors.New("short record")
	}
	return sluggable.Map{"id": recordID(b[:4]), "slug": string(b[4:])}, nil
}

type brokenBackend struct{}

func (brokenBackend) Generation(context.Context) (int64, error) {
	return 0, nil
}

func (brokenBackend) Get(context.Context, int64, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenBackend) Set(context.Context, int64, string, []byte) error {
	return errors.New("connection refused")
}

func (brokenBackend) Purge(context.Context) error {
	return errors.New("connection refused")
}

func TestNew(t *testing.T) {
	_, err := slugcache.New(nil, slugcache.NewMemory(1, 0))
	assert.ErrorIs(t, err, slugcache.ErrInvalidCache)

	_, err = slugcache.New(newCountingStore(), nil)
	assert.ErrorIs(t, err, slugcache.ErrInvalidCache)
}

func TestFindBySlugCaches(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cache, err := slugcache.New(store, slugcache.NewMemory(16, 0))
	require.NoError(t, err)

	for range 3 {
		rec, err := cache.FindBySlug(ctx, "hello-world")
		require.NoError(t, err)
		assert.Equal(t, "Hello World", rec["name"])
	}
	assert.Equal(t, 1, store.finds)

	_, err = cache.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, sluggable.ErrNotFound)
	_, err = cache.FindBySlug(ctx, "missing")
	assert.ErrorIs(t, err, sluggable.ErrNotFound)
	assert.Equal(t, 3, store.finds, "not-found results are not cached")
}

func TestFindBySlugNumbers(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	store.rows["1"]["views"] = 42
	cache, err := slugcache.New(store, slugcache.NewMemory(16, 0))
	require.NoError(t, err)

	_, err = cache.FindBySlug(ctx, "hello-world")
	require.NoError(t, err)
	rec, err := cache.FindBySlug(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, json.Number("42"), rec["views"])
	assert.Equal(t, "42", sluggable.FieldString(rec, "views"))
}

func TestSluggedListCaches(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cache, err := slugcache.New(store, slugcache.NewMemory(16, 0))
	require.NoError(t, err)

	want := []sluggable.Entry{{Slug: "hello-world", Name: "Hello World"}}
	for range 2 {
		list, err := cache.SluggedList(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, list)
	}
	assert.Equal(t, 1, store.lists)
}

func TestSavePurges(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	cache, err := slugcache.New(store, slugcache.NewMemory(16, 0))
	require.NoError(t, err)

	_, err = cache.SluggedList(ctx)
	require.NoError(t, err)

	behavior, err := sluggable.NewBehavior(sluggable.NewConfig(sluggable.WithOverwrite(true)))
	require.NoError(t, err)

	rec := sluggable.Map{"id": "1", "name": "Goodbye World", "slug": "hello-world"}
	require.NoError(t, behavior.AfterSave(ctx, rec, cache))
	assert.Equal(t, 1, store.saves)

	list, err := cache.SluggedList(ctx)
	require.NoError(t, err)
	assert.Equal(t, []sluggable.Entry{{Slug: "goodbye-world", Name: "Goodbye World"}}, list)
	assert.Equal(t, 2, store.lists)
}

func TestBrokenBackendFallsThrough(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	store := newCountingStore()
	cache, err := slugcache.New(store, brokenBackend{},
		slugcache.WithLogger(logger.New(logger.WithOutput(&out))))
	require.NoError(t, err)

	rec, err := cache.FindBySlug(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "hello-world", rec["slug"])

	require.NoError(t, cache.Save(ctx, sluggable.Map{"id": "2", "name": "x", "slug": "x"}))
	assert.Error(t, cache.Invalidate(ctx))

	assert.Contains(t, out.String(), "cache read failed")
	assert.Contains(t, out.String(), "cache write failed")
	assert.Contains(t, out.String(), "cache purge failed")
}

func TestCorruptEntryIsReloaded(t *testing.T) {
	ctx := context.Background()
	backend := slugcache.NewMemory(16, 0)
	require.NoError(t, backend.Set(ctx, 0, "list", []byte("{not json")))

	store := newCountingStore()
	cache, err := slugcache.New(store, backend)
	require.NoError(t, err)

	list, err := cache.SluggedList(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, store.lists)
}

func TestStoreCodecKeepsTypes(t *testing.T) {
	ctx := context.Background()
	id := recordID{1, 2, 3, 4}
	store := &typedStore{countingStore: newCountingStore()}
	store.rows = map[string]sluggable.Map{"1": {"id": id, "name": "Hello World", "slug": "hello-world"}}

	cache, err := slugcache.New(store, slugcache.NewMemory(16, 0))
	require.NoError(t, err)

	miss, err := cache.FindBySlug(ctx, "hello-world")
	require.NoError(t, err)
	hit, err := cache.FindBySlug(ctx, "hello-world")
	require.NoError(t, err)

	assert.Equal(t, 1, store.finds)
	assert.Equal(t, 1, store.encodes)
	assert.IsType(t, miss["id"], hit["id"])
	assert.Equal(t, id, hit["id"])
}

// keyedStore only saves records whose "id" has the exact type it issued.
type keyedStore struct {
	*typedStore
}

func (s keyedStore) Save(ctx context.Context, rec sluggable.MutableRecord) error {
	v, _ := rec.Get("id")
	if _, ok := v.(recordID); !ok {
		return sluggable.ErrNotFound
	}
	return s.countingStore.Save(ctx, rec)
}

func TestSaveAfterCacheHit(t *testing.T) {
	ctx := context.Background()
	id := recordID{9, 9, 9, 9}
	base := &typedStore{countingStore: newCountingStore()}
	base.rows = map[string]sluggable.Map{"1": {"id": id, "name": "Hello World", "slug": "hello-world"}}
	store := keyedStore{typedStore: base}

	cache, err := slugcache.New(store, slugcache.NewMemory(16, 0))
	require.NoError(t, err)

	_, err = cache.FindBySlug(ctx, "hello-world")
	require.NoError(t, err)
	hit, err := cache.FindBySlug(ctx, "hello-world")
	require.NoError(t, err)
	require.Equal(t, 1, base.finds)

	hit["slug"] = "hello-again"
	require.NoError(t, cache.Save(ctx, hit))
	assert.Equal(t, 1, base.saves)
}

// racingStore purges the cache while a lookup is reading from the store.
type racingStore struct {
	*countingStore
	backend slugcache.Backend
	purge   bool
}

func (s *racingStore) SluggedList(ctx context.Context) ([]sluggable.Entry, error) {
	list, err := s.countingStore.SluggedList(ctx)
	if s.purge {
		s.purge = false
		if err := s.backend.Purge(ctx); err != nil {
			return nil, err
		}
	}
	return list, err
}

func TestPurgeDuringLookupWins(t *testing.T) {
	ctx := context.Background()
	backend := slugcache.NewMemory(16, 0)
	store := &racingStore{countingStore: newCountingStore(), backend: backend, purge: true}

	cache, err := slugcache.New(store, backend)
	require.NoError(t, err)

	_, err = cache.SluggedList(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, backend.Len(), "result read before the purge is not cached")

	_, err = cache.SluggedList(ctx)
	require.NoError(t, err)
	_, err = cache.SluggedList(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.lists)
}
