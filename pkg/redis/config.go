package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required"`                     // ConnectionURL is the URL of the server, e.g. "redis://:password@localhost:6379/0".
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"slug"`     // KeyPrefix namespaces every key written by the slug cache.
	TTL            time.Duration `env:"REDIS_TTL" envDefault:"10m"`             // TTL is the lifetime of cached lookups. Zero keeps them until invalidated.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of attempts to connect to the server.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`   // RetryInterval is the wait between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"` // ConnectTimeout bounds the whole connection procedure.
}
