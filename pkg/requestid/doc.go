// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware keeps a well-formed X-Request-ID supplied by the client and
// otherwise generates a UUIDv7. The ID is echoed in the response header and
// stored in the request context, where FromContext reads it and
// LoggerExtractor feeds it to the logger:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
