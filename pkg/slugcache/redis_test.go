package slugcache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sluggable/pkg/redis"
	"github.com/dmitrymomot/sluggable/pkg/slugcache"
)

// Runs against a real server when REDIS_URL is set.
func TestRedisBackend(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1})
	require.NoError(t, err)
	defer client.Close()

	prefix := "slugcache-test-" + time.Now().Format("150405.000000")
	backend := slugcache.NewRedis(client, prefix, time.Minute)

	gen, err := backend.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	_, err = backend.Get(ctx, gen, "a")
	assert.ErrorIs(t, err, slugcache.ErrMiss)

	require.NoError(t, backend.Set(ctx, gen, "a", []byte("1")))
	v, err := backend.Get(ctx, gen, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	require.NoError(t, backend.Purge(ctx))
	next, err := backend.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)

	_, err = backend.Get(ctx, next, "a")
	assert.ErrorIs(t, err, slugcache.ErrMiss)

	// A write for the purged generation is dropped.
	require.NoError(t, backend.Set(ctx, gen, "b", []byte("stale")))
	n, err := client.Exists(ctx, prefix+":0:b").Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, client.Del(ctx, prefix+":gen", prefix+":0:a").Err())
}
