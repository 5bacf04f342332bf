// Package httpserver runs an http.Handler with configurable timeouts and
// signal-driven graceful shutdown.
//
// Run listens on the configured address and blocks until the context is
// cancelled, SIGINT or SIGTERM arrives, or the listener fails. In-flight
// requests then get ShutdownTimeout to drain and stop hooks run. Errors are
// joined with ErrStart or ErrShutdown for errors.Is inspection.
//
// Configuration comes from Config (HTTP_* environment variables) through
// NewFromConfig, or from Option values passed to New.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server exited", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler provide plain-text probes. Readiness
// runs each named Check under a shared timeout and reports 503 on the first
// failure.
package httpserver
