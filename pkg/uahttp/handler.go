package uahttp

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/uakit/pkg/logger"
)

// HandlerFunc produces a Response for a request. Headers may be set on w
// before returning; the body belongs to the Response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) Response

type statusCoder interface {
	StatusCode() int
}

// handle adapts h to http.HandlerFunc. Failed responses are logged at WARN
// for 4xx and ERROR for 5xx, with the underlying cause when there is one.
func (s *Server) handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h(w, r)
		if resp == nil {
			resp = JSONError(ErrInternal)
		}

		if sc, ok := resp.(statusCoder); ok && sc.StatusCode() >= http.StatusBadRequest {
			level := slog.LevelWarn
			if sc.StatusCode() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{slog.Int("status", sc.StatusCode()), slog.String("path", r.URL.Path)}
			if jr, ok := resp.(jsonResponse); ok && jr.cause != nil {
				attrs = append(attrs, logger.Error(jr.cause))
			}
			s.log.LogAttrs(r.Context(), level, "request failed", attrs...)
		}

		if err := resp.Render(w, r); err != nil {
			s.log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
		}
	}
}
