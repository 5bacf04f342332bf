package uahttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/uakit/pkg/uastats"
)

// StatsPage is the GET /v1/stats/{dimension} payload.
type StatsPage struct {
	Dimension uastats.Dimension `json:"dimension"`
	Day       string            `json:"day"`
	Counts    []uastats.Count   `json:"counts"`
}

var errStatsUnavailable = HTTPError{Code: http.StatusServiceUnavailable, Key: "stats_unavailable", Message: "statistics backend unavailable"}

func (s *Server) stats(_ http.ResponseWriter, r *http.Request) Response {
	verr := ValidationError{}

	dim, err := uastats.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		verr.add("dimension", "must be one of os, agent, model, bot")
	}

	q := r.URL.Query()
	day := s.now()
	if v := q.Get("day"); v != "" {
		if day, err = time.Parse(uastats.DayLayout, v); err != nil {
			verr.add("day", "must be formatted YYYY-MM-DD")
		}
	}

	limit := uastats.DefaultLimit
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > s.cfg.MaxStatsLimit {
			verr.add("limit", "must be between 1 and "+strconv.Itoa(s.cfg.MaxStatsLimit))
		}
	}
	if len(verr) > 0 {
		return JSONError(verr)
	}

	counts, err := s.recorder.Store().Top(r.Context(), dim, day, limit)
	if err != nil {
		return JSONError(errStatsUnavailable, WithCause(err))
	}
	if counts == nil {
		counts = []uastats.Count{}
	}
	return JSON(StatsPage{Dimension: dim, Day: uastats.Day(day), Counts: counts})
}
