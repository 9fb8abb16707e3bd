package slugcache

import "context"

// Backend stores encoded lookup results under a generation. Purge starts a
// new generation; entries read or written with an older one are never served.
type Backend interface {
	// Generation returns the current generation.
	Generation(ctx context.Context) (int64, error)
	// Get returns ErrMiss when key is absent, expired or from another generation.
	Get(ctx context.Context, gen int64, key string) ([]byte, error)
	// Set stores value under gen. Writes for a purged generation are dropped.
	Set(ctx context.Context, gen int64, key string, value []byte) error
	Purge(ctx context.Context) error
}
