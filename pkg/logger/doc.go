// Package logger builds *slog.Logger values for uakit binaries.
//
// New takes functional options for the level, the format (json or text), the
// output and static attributes. ContextExtractor callbacks add request-scoped
// attributes such as the request id at log time. FromConfig applies a Config
// loaded from the environment:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.New(logger.FromConfig(cfg),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// Attribute helpers in attr.go keep key names consistent across packages:
// Rule, Category, UserAgent, Source, Line, Count, Dimension, Error and friends.
// Error and Errors return an empty Attr for nil errors, so
//
//	log.Info("batch done", logger.Count(n), logger.Error(err))
//
// needs no nil check.
package logger
