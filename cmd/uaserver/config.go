package main

import (
	"github.com/dmitrymomot/uakit/pkg/httpserver"
	"github.com/dmitrymomot/uakit/pkg/logger"
	"github.com/dmitrymomot/uakit/pkg/pg"
	"github.com/dmitrymomot/uakit/pkg/ratelimiter"
	"github.com/dmitrymomot/uakit/pkg/redis"
	"github.com/dmitrymomot/uakit/pkg/uahttp"
)

// Stats backends.
const (
	BackendNone     = "none"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config is the full server configuration.
type Config struct {
	Log  logger.Config
	HTTP httpserver.Config
	API  uahttp.Config

	CacheSize int  `env:"UA_CACHE_SIZE" envDefault:"10000"`
	FillNone  bool `env:"UA_FILL_NONE" envDefault:"false"`

	StatsBackend string `env:"STATS_BACKEND" envDefault:"memory"`
	Redis        redis.Config
	Postgres     pg.Config

	RateLimitEnabled bool `env:"UA_RATE_ENABLED" envDefault:"false"`
	RateLimit        ratelimiter.Config
}
