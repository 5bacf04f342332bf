// Package ratelimiter meters classification work per client with a token
// bucket.
//
// A Bucket holds Capacity tokens and regains RefillRate of them every
// RefillInterval. Single lookups take one token; batch requests take one per
// user agent, so a client cannot sidestep the limit by batching:
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	limiter, err := ratelimiter.NewBucket(store, cfg)
//	res, err := limiter.AllowN(ctx, clientip.GetIP(r), len(batch))
//	if err == nil && !res.Allowed() {
//		// 429, retry after res.RetryAfter()
//	}
//
// A denied take consumes nothing.
package ratelimiter
