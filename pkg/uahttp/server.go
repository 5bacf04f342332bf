package uahttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/uakit/pkg/clientip"
	"github.com/dmitrymomot/uakit/pkg/httpserver"
	"github.com/dmitrymomot/uakit/pkg/logger"
	"github.com/dmitrymomot/uakit/pkg/ratelimiter"
	"github.com/dmitrymomot/uakit/pkg/requestid"
	"github.com/dmitrymomot/uakit/pkg/uastats"
	"github.com/dmitrymomot/uakit/pkg/useragent"
)

// Config bounds the request surface.
type Config struct {
	MaxBatch      int           `env:"UA_MAX_BATCH" envDefault:"1000"`
	MaxBodyBytes  int64         `env:"UA_MAX_BODY_BYTES" envDefault:"4194304"`
	MaxStatsLimit int           `env:"UA_MAX_STATS_LIMIT" envDefault:"100"`
	ReadyTimeout  time.Duration `env:"UA_READY_TIMEOUT" envDefault:"2s"`
}

// DefaultConfig mirrors the envDefault values.
func DefaultConfig() Config {
	return Config{
		MaxBatch:      1000,
		MaxBodyBytes:  4 << 20,
		MaxStatsLimit: 100,
		ReadyTimeout:  2 * time.Second,
	}
}

// Server holds the dependencies of the HTTP API.
type Server struct {
	cfg        Config
	classifier *useragent.Classifier
	recorder   *uastats.Recorder
	limiter    *ratelimiter.Bucket
	log        *slog.Logger
	checks     []httpserver.Check
	now        func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithConfig replaces the limits. Non-positive fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		if cfg.MaxBatch > 0 {
			s.cfg.MaxBatch = cfg.MaxBatch
		}
		if cfg.MaxBodyBytes > 0 {
			s.cfg.MaxBodyBytes = cfg.MaxBodyBytes
		}
		if cfg.MaxStatsLimit > 0 {
			s.cfg.MaxStatsLimit = cfg.MaxStatsLimit
		}
		if cfg.ReadyTimeout > 0 {
			s.cfg.ReadyTimeout = cfg.ReadyTimeout
		}
	}
}

func WithClassifier(c *useragent.Classifier) Option {
	return func(s *Server) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithRecorder enables counting and the stats endpoint.
func WithRecorder(r *uastats.Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// WithRateLimiter meters classification per client IP.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(s *Server) { s.limiter = b }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithChecks adds readiness probes.
func WithChecks(checks ...httpserver.Check) Option {
	return func(s *Server) { s.checks = append(s.checks, checks...) }
}

// WithClock overrides time.Now for the default stats day.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer returns a Server using useragent.Default() unless configured.
func NewServer(opts ...Option) *Server {
	s := &Server{
		cfg:        DefaultConfig(),
		classifier: useragent.Default(),
		log:        logger.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router mounts every route:
//
//	GET  /v1/classify?ua=&fill_none=
//	POST /v1/classify
//	GET  /v1/stats/{dimension}?day=&limit=   (with a recorder store)
//	GET  /health/live
//	GET  /health/ready
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		RequestLogger(s.log),
		middleware.Recoverer,
	)

	r.NotFound(s.handle(func(http.ResponseWriter, *http.Request) Response { return JSONError(ErrNotFound) }))
	r.MethodNotAllowed(s.handle(func(http.ResponseWriter, *http.Request) Response { return JSONError(ErrMethodNotAllowed) }))

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(s.log, s.cfg.ReadyTimeout, s.checks...))

	r.Route("/v1", func(r chi.Router) {
		r.With(Classify(s.classifier)).Get("/classify", s.handle(s.classifyOne))
		r.Post("/classify", s.handle(s.classifyBatch))
		if s.recorder != nil && s.recorder.Store() != nil {
			r.Get("/stats/{dimension}", s.handle(s.stats))
		}
	})

	return r
}
