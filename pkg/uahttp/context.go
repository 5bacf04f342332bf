package uahttp

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/uakit/pkg/useragent"
)

type resultKey struct{}

// WithResult stores res in ctx.
func WithResult(ctx context.Context, res *useragent.Result) context.Context {
	return context.WithValue(ctx, resultKey{}, res)
}

// FromContext returns the classification of the current request's
// User-Agent, stored by Classify.
func FromContext(ctx context.Context) (*useragent.Result, bool) {
	res, ok := ctx.Value(resultKey{}).(*useragent.Result)
	return res, ok && res != nil
}

// Classify classifies each request's User-Agent header with c and stores the
// result in the request context. A nil c uses useragent.Default().
func Classify(c *useragent.Classifier) func(http.Handler) http.Handler {
	if c == nil {
		c = useragent.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := c.Classify(r.UserAgent())
			next.ServeHTTP(w, r.WithContext(WithResult(r.Context(), res)))
		})
	}
}
