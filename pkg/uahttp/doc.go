// Package uahttp exposes user-agent classification over HTTP.
//
// Routes (see Server.Router):
//
//	GET  /v1/classify            classify ?ua= or the caller's User-Agent
//	POST /v1/classify            classify {"user_agents": [...], "fill_none": bool}
//	GET  /v1/stats/{dimension}   top counters for ?day=YYYY-MM-DD&limit=
//	GET  /health/live            liveness
//	GET  /health/ready           readiness probes
//
// Every JSON body uses the envelope {"data": ..., "meta": ..., "error":
// {"code", "message", "details"}}. Validation failures are 422 with per-field
// details; oversized batches are rejected the same way.
//
// The Classify middleware stores the classification of the request's own
// User-Agent in its context; handlers read it with FromContext. A configured
// ratelimiter.Bucket charges one token per classified user agent, keyed by
// client IP.
package uahttp
