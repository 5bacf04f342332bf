package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/uakit/pkg/httpserver"
	"github.com/dmitrymomot/uakit/pkg/logger"
	"github.com/dmitrymomot/uakit/pkg/pg"
	"github.com/dmitrymomot/uakit/pkg/ratelimiter"
	"github.com/dmitrymomot/uakit/pkg/redis"
	"github.com/dmitrymomot/uakit/pkg/uahttp"
	"github.com/dmitrymomot/uakit/pkg/uastats"
	"github.com/dmitrymomot/uakit/pkg/useragent"
)

// ErrUnknownBackend is returned for an unsupported STATS_BACKEND value.
var ErrUnknownBackend = errors.New("unknown stats backend")

// deps holds everything run builds before serving.
type deps struct {
	handler *uahttp.Server
	hooks   []func(*slog.Logger)
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	d, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}

	opts := []httpserver.Option{httpserver.WithLogger(log)}
	for _, h := range d.hooks {
		opts = append(opts, httpserver.WithStopHook(h))
	}
	return httpserver.NewFromConfig(cfg.HTTP, opts...).Run(ctx, d.handler.Router())
}

func build(ctx context.Context, cfg Config, log *slog.Logger) (*deps, error) {
	classifierOpts := []useragent.Option{
		useragent.WithLogger(log.With(logger.Component("classifier"))),
		useragent.WithFillNone(cfg.FillNone),
	}
	if cfg.CacheSize > 0 {
		classifierOpts = append(classifierOpts, useragent.WithCache(cfg.CacheSize))
	}
	classifier := useragent.New(nil, classifierOpts...)

	d := &deps{}
	serverOpts := []uahttp.Option{
		uahttp.WithConfig(cfg.API),
		uahttp.WithClassifier(classifier),
		uahttp.WithLogger(log),
	}

	store, checks, closers, err := newStatsStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	d.hooks = append(d.hooks, closers...)
	if store != nil {
		rec := uastats.NewRecorder(store, classifier,
			uastats.WithRecorderLogger(log.With(logger.Component("stats"))),
		)
		serverOpts = append(serverOpts, uahttp.WithRecorder(rec))
	}
	serverOpts = append(serverOpts, uahttp.WithChecks(checks...))

	if cfg.RateLimitEnabled {
		ms := ratelimiter.NewMemoryStore()
		bucket, err := ratelimiter.NewBucket(ms, cfg.RateLimit)
		if err != nil {
			ms.Close()
			return nil, err
		}
		serverOpts = append(serverOpts, uahttp.WithRateLimiter(bucket))
		d.hooks = append(d.hooks, func(*slog.Logger) { ms.Close() })
	}

	d.handler = uahttp.NewServer(serverOpts...)
	log.Info("uaserver configured",
		slog.String("stats_backend", cfg.StatsBackend),
		slog.Bool("rate_limit", cfg.RateLimitEnabled),
		slog.Int("cache_size", cfg.CacheSize),
	)
	return d, nil
}

// newStatsStore connects the configured stats backend. A nil store with no
// error means statistics are disabled.
func newStatsStore(ctx context.Context, cfg Config, log *slog.Logger) (uastats.Store, []httpserver.Check, []func(*slog.Logger), error) {
	switch cfg.StatsBackend {
	case BackendNone, "":
		return nil, nil, nil, nil

	case BackendMemory:
		return uastats.NewMemoryStore(), nil, nil, nil

	case BackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		checks := []httpserver.Check{{Name: "redis", Probe: redis.Healthcheck(client)}}
		closer := func(l *slog.Logger) {
			if err := client.Close(); err != nil {
				l.Error("failed to close redis client", logger.Error(err))
			}
		}
		return uastats.NewRedisStore(client), checks, []func(*slog.Logger){closer}, nil

	case BackendPostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pg.Migrate(ctx, pool, uastats.Migrations, uastats.MigrationsDir, cfg.Postgres, log); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		checks := []httpserver.Check{{Name: "postgres", Probe: pg.Healthcheck(pool)}}
		closer := func(*slog.Logger) { pool.Close() }
		return uastats.NewPostgresStore(pool), checks, []func(*slog.Logger){closer}, nil
	}

	return nil, nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StatsBackend)
}
