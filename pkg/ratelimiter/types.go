package ratelimiter

import (
	"context"
	"time"
)

// Config is a token bucket: Capacity tokens at most, RefillRate tokens added
// every RefillInterval.
type Config struct {
	Capacity       int           `env:"UA_RATE_CAPACITY" envDefault:"2000"`
	RefillRate     int           `env:"UA_RATE_REFILL" envDefault:"100"`
	RefillInterval time.Duration `env:"UA_RATE_INTERVAL" envDefault:"1s"`
}

// Result is the bucket state after a take.
type Result struct {
	Limit     int
	Remaining int // negative when the take was denied
	ResetAt   time.Time
}

// Allowed reports whether the take fit in the bucket.
func (r *Result) Allowed() bool { return r.Remaining >= 0 }

// RetryAfter is how long to wait before retrying a denied take, zero when
// allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Store holds bucket state per key.
type Store interface {
	// Take refills the bucket for key and subtracts n tokens. A denied take
	// leaves the tokens untouched and reports the shortfall as a negative
	// remaining count.
	Take(ctx context.Context, key string, n int, cfg Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}
