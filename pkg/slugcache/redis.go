package slugcache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Backend shared between processes. Keys live under
// "<prefix>:<generation>:"; Purge bumps the generation stored at
// "<prefix>:gen", and entries of older generations disappear once their TTL
// runs out.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis backend. An empty prefix becomes "slug".
func NewRedis(client redis.UniversalClient, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = "slug"
	}
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) Generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, r.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Join(ErrBackendFailed, err)
	}
	return gen, nil
}

func (r *Redis) Get(ctx context.Context, gen int64, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.dataKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, errors.Join(ErrBackendFailed, err)
	}
	return b, nil
}

// Set writes value only while gen is still current. The check and the write
// run in one MULTI/EXEC guarded by WATCH on the generation key.
func (r *Redis) Set(ctx context.Context, gen int64, key string, value []byte) error {
	genKey := r.generationKey()
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.dataKey(gen, key), value, r.ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		// Purged while writing.
		return nil
	}
	if err != nil {
		return errors.Join(ErrBackendFailed, err)
	}
	return nil
}

func (r *Redis) Purge(ctx context.Context) error {
	if err := r.client.Incr(ctx, r.generationKey()).Err(); err != nil {
		return errors.Join(ErrBackendFailed, err)
	}
	return nil
}

func (r *Redis) generationKey() string {
	return r.prefix + ":gen"
}

func (r *Redis) dataKey(gen int64, key string) string {
	return r.prefix + ":" + strconv.FormatInt(gen, 10) + ":" + key
}
