// Command uaserver exposes the user-agent classifier over HTTP.
//
// Configuration is read from the environment (and optional .env files):
// HTTP_*, LOG_*, UA_*, STATS_BACKEND plus REDIS_* or PG_* for the selected
// stats backend.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/uakit/pkg/config"
	"github.com/dmitrymomot/uakit/pkg/logger"
	"github.com/dmitrymomot/uakit/pkg/requestid"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		config.MustLoadEnv(".env")
	}

	var cfg Config
	config.MustLoad(&cfg)

	log := newLogger(cfg, os.Stderr)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg Config, w io.Writer) *slog.Logger {
	return logger.New(
		logger.FromConfig(cfg.Log),
		logger.WithOutput(w),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
}
