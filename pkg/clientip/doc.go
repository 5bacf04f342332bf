// Package clientip resolves the client address of an HTTP request behind
// CDNs and reverse proxies. The result keys per-client rate limits and
// appears in request logs.
//
//	ip := clientip.GetIP(r)
//	ip = clientip.FromHeaders(r, "X-Real-IP") // trust one proxy header only
package clientip
