// Package redis connects to the Redis server that backs the shared slug
// lookup cache (see pkg/slugcache).
//
// Config is read from REDIS_* environment variables with pkg/config:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Connect retries the initial ping RetryAttempts times, RetryInterval apart,
// and gives up once ConnectTimeout elapses. Failures are reported as
// ErrRedisNotReady joined with the last driver error.
package redis
