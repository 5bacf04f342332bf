package uahttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/uakit/pkg/useragent"
)

// Classification is one classified user agent.
type Classification struct {
	UserAgent string            `json:"user_agent"`
	Result    *useragent.Result `json:"result"`
	Summary   useragent.Summary `json:"summary"`
}

// BatchRequest is the POST /v1/classify body.
type BatchRequest struct {
	UserAgents []string `json:"user_agents"`
	FillNone   bool     `json:"fill_none"`
}

func (s *Server) classifyOne(w http.ResponseWriter, r *http.Request) Response {
	q := r.URL.Query()
	fill, err := parseBool(q, "fill_none")
	if err != nil {
		return JSONError(err)
	}
	if resp := s.limit(w, r, 1); resp != nil {
		return resp
	}

	// The Classify middleware already handled the caller's own header.
	if !q.Has("ua") && !q.Has("fill_none") {
		if res, ok := FromContext(r.Context()); ok {
			return JSON(s.record(r.Context(), r.UserAgent(), res))
		}
	}

	ua := r.UserAgent()
	if q.Has("ua") {
		ua = q.Get("ua")
	}
	return JSON(s.classify(r.Context(), ua, fill))
}

func (s *Server) classifyBatch(w http.ResponseWriter, r *http.Request) Response {
	var req BatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return JSONError(ErrBodyTooLarge)
		case errors.Is(err, io.EOF):
			return JSONError(HTTPError{Code: http.StatusBadRequest, Key: "invalid_json", Message: "request body is empty"})
		default:
			return JSONError(HTTPError{Code: http.StatusBadRequest, Key: "invalid_json", Message: err.Error()})
		}
	}

	verr := ValidationError{}
	switch n := len(req.UserAgents); {
	case n == 0:
		verr.add("user_agents", "is required")
	case n > s.cfg.MaxBatch:
		verr.add("user_agents", "must contain at most "+strconv.Itoa(s.cfg.MaxBatch)+" entries")
	}
	if len(verr) > 0 {
		return JSONError(verr)
	}

	if resp := s.limit(w, r, len(req.UserAgents)); resp != nil {
		return resp
	}

	out := make([]Classification, 0, len(req.UserAgents))
	for _, ua := range req.UserAgents {
		out = append(out, s.classify(r.Context(), ua, req.FillNone))
	}
	return JSON(out, WithMeta(map[string]any{"count": len(out)}))
}

func (s *Server) classify(ctx context.Context, ua string, fill bool) Classification {
	var opts []useragent.ClassifyOption
	if fill {
		opts = append(opts, useragent.FillNone())
	}
	return s.record(ctx, ua, s.classifier.Classify(ua, opts...))
}

func (s *Server) record(ctx context.Context, ua string, res *useragent.Result) Classification {
	c := Classification{UserAgent: ua, Result: res, Summary: res.Summary()}
	if s.recorder != nil {
		s.recorder.Record(ctx, c.Summary)
	}
	return c
}

func parseBool(q url.Values, key string) (bool, error) {
	if !q.Has(key) {
		return false, nil
	}
	v, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return false, ValidationError{key: {"must be a boolean"}}
	}
	return v, nil
}
