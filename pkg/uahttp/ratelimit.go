package uahttp

import (
	"net/http"
	"strconv"

	"github.com/dmitrymomot/uakit/pkg/clientip"
	"github.com/dmitrymomot/uakit/pkg/logger"
)

// limit takes n tokens for the caller and sets the X-RateLimit headers. It
// returns a 429 response when the bucket is short. Limiter failures let the
// request through.
func (s *Server) limit(w http.ResponseWriter, r *http.Request, n int) Response {
	if s.limiter == nil {
		return nil
	}

	res, err := s.limiter.AllowN(r.Context(), clientip.FromRequest(r), n)
	if err != nil {
		s.log.WarnContext(r.Context(), "rate limiter unavailable", logger.Error(err))
		return nil
	}

	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

	if !res.Allowed() {
		if secs := int(res.RetryAfter().Seconds()); secs > 0 {
			h.Set("Retry-After", strconv.Itoa(secs))
		}
		return JSONError(ErrTooManyRequests)
	}
	return nil
}
