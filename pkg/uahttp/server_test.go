package uahttp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uakit/pkg/httpserver"
	"github.com/dmitrymomot/uakit/pkg/ratelimiter"
	"github.com/dmitrymomot/uakit/pkg/requestid"
	"github.com/dmitrymomot/uakit/pkg/uahttp"
	"github.com/dmitrymomot/uakit/pkg/uastats"
)

const (
	chromeUA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.5790.170 Safari/537.36"
	googlebotUA = "Googlebot/2.1 (+http://www.google.com/bot.html)"
	curlUA      = "curl/8.4.0"
)

var today = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

type classification struct {
	UserAgent string         `json:"user_agent"`
	Result    map[string]any `json:"result"`
	Summary   struct {
		OSName       string `json:"os_name"`
		OSVersion    string `json:"os_version"`
		AgentName    string `json:"agent_name"`
		AgentVersion string `json:"agent_version"`
		Bot          bool   `json:"bot"`
	} `json:"summary"`
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return do(t, h, httptest.NewRequest(http.MethodGet, target, nil))
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/classify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, h, req)
}

func TestClassifyGet(t *testing.T) {
	t.Parallel()
	h := uahttp.NewServer().Router()

	t.Run("query parameter", func(t *testing.T) {
		t.Parallel()
		rec, env := get(t, h, "/v1/classify?ua="+url.QueryEscape(chromeUA))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))

		var c classification
		require.NoError(t, json.Unmarshal(env.Data, &c))
		assert.Equal(t, chromeUA, c.UserAgent)
		assert.Equal(t, "Windows", c.Summary.OSName)
		assert.Equal(t, "10", c.Summary.OSVersion)
		assert.Equal(t, "Chrome", c.Summary.AgentName)
		assert.Equal(t, "115.0.5790.170", c.Summary.AgentVersion)
		assert.Contains(t, c.Result, "browser")
		assert.Contains(t, c.Result, "platform")
	})

	t.Run("caller user agent", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/v1/classify", nil)
		req.Header.Set("User-Agent", googlebotUA)
		rec, env := do(t, h, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var c classification
		require.NoError(t, json.Unmarshal(env.Data, &c))
		assert.Equal(t, "Googlebot", c.Summary.AgentName)
		assert.True(t, c.Summary.Bot)
	})

	t.Run("fill none", func(t *testing.T) {
		t.Parallel()
		rec, env := get(t, h, "/v1/classify?fill_none=true&ua="+url.QueryEscape(curlUA))
		require.Equal(t, http.StatusOK, rec.Code)

		var c classification
		require.NoError(t, json.Unmarshal(env.Data, &c))
		assert.Contains(t, c.Result, "os")
		assert.Contains(t, c.Result, "browser")
	})

	t.Run("invalid fill none", func(t *testing.T) {
		t.Parallel()
		rec, env := get(t, h, "/v1/classify?fill_none=maybe")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "validation_error", env.Error.Code)
		assert.Contains(t, env.Error.Details, "fill_none")
	})
}

func TestClassifyBatch(t *testing.T) {
	t.Parallel()
	h := uahttp.NewServer(uahttp.WithConfig(uahttp.Config{MaxBatch: 3, MaxBodyBytes: 1024})).Router()

	t.Run("classifies in order", func(t *testing.T) {
		t.Parallel()
		body := `{"user_agents": [` + strings.Join([]string{
			strconvQuote(chromeUA), strconvQuote(curlUA), strconvQuote(""),
		}, ",") + `]}`
		rec, env := post(t, h, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var out []classification
		require.NoError(t, json.Unmarshal(env.Data, &out))
		require.Len(t, out, 3)
		assert.Equal(t, "Chrome", out[0].Summary.AgentName)
		assert.Equal(t, "curl", out[1].Summary.AgentName)
		assert.Equal(t, "Unknown OS", out[2].Summary.OSName)
		assert.Equal(t, "Unknown Browser", out[2].Summary.AgentName)
		assert.EqualValues(t, 3, env.Meta["count"])
	})

	tests := []struct {
		name string
		body string
		code int
		key  string
	}{
		{"empty body", "", http.StatusBadRequest, "invalid_json"},
		{"malformed", `{"user_agents": [`, http.StatusBadRequest, "invalid_json"},
		{"empty list", `{"user_agents": []}`, http.StatusUnprocessableEntity, "validation_error"},
		{"too many", `{"user_agents": ["a","b","c","d"]}`, http.StatusUnprocessableEntity, "validation_error"},
		{"too large", `{"user_agents": ["` + strings.Repeat("x", 2048) + `"]}`, http.StatusRequestEntityTooLarge, "request_entity_too_large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := post(t, h, tt.body)
			assert.Equal(t, tt.code, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.key, env.Error.Code)
		})
	}
}

func strconvQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestStats(t *testing.T) {
	t.Parallel()

	store := uastats.NewMemoryStore()
	clock := func() time.Time { return today }
	rec := uastats.NewRecorder(store, nil, uastats.WithClock(clock))
	h := uahttp.NewServer(uahttp.WithRecorder(rec), uahttp.WithClock(clock)).Router()

	_, _ = post(t, h, `{"user_agents": [`+strconvQuote(chromeUA)+`,`+strconvQuote(chromeUA)+`,`+strconvQuote(curlUA)+`]}`)
	_, _ = get(t, h, "/v1/classify?ua="+url.QueryEscape(googlebotUA))

	resp, env := get(t, h, "/v1/stats/agent?limit=2")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var page uahttp.StatsPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, uastats.DimensionAgent, page.Dimension)
	assert.Equal(t, "2024-03-01", page.Day)
	assert.Equal(t, []uastats.Count{{Value: "Chrome", Hits: 2}, {Value: "Googlebot", Hits: 1}}, page.Counts)

	resp, env = get(t, h, "/v1/stats/bot?day=2024-02-29")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.Counts)

	resp, env = get(t, h, "/v1/stats/browser?day=yesterday&limit=1000")
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "dimension")
	assert.Contains(t, env.Error.Details, "day")
	assert.Contains(t, env.Error.Details, "limit")
}

type brokenStore struct{}

func (*brokenStore) Record(context.Context, uastats.Event) error { return nil }
func (*brokenStore) Top(context.Context, uastats.Dimension, time.Time, int) ([]uastats.Count, error) {
	return nil, errors.New("connection refused")
}

func TestStatsBackendFailure(t *testing.T) {
	t.Parallel()

	h := uahttp.NewServer(uahttp.WithRecorder(uastats.NewRecorder(&brokenStore{}, nil))).Router()
	rec, env := get(t, h, "/v1/stats/os")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "stats_unavailable", env.Error.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestStatsDisabled(t *testing.T) {
	t.Parallel()

	rec, env := get(t, uahttp.NewServer().Router(), "/v1/stats/os")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	rec, env := do(t, uahttp.NewServer().Router(), httptest.NewRequest(http.MethodDelete, "/v1/classify", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "method_not_allowed", env.Error.Code)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithIdleTTL(0))
	t.Cleanup(store.Close)
	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)
	h := uahttp.NewServer(uahttp.WithRateLimiter(bucket)).Router()

	rec, _ := post(t, h, `{"user_agents": ["a", "b"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	rec, env := post(t, h, `{"user_agents": ["a", "b"]}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "too_many_requests", env.Error.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// The denied batch consumed nothing.
	rec, _ = get(t, h, "/v1/classify?ua=curl/8.4.0")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := uahttp.NewServer(uahttp.WithChecks(httpserver.Check{
		Name:  "store",
		Probe: func(context.Context) error { return errors.New("down") },
	})).Router()

	rec, _ := get(t, h, "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	rec, _ = get(t, h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())
}

func TestClassifyMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := uahttp.Classify(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := uahttp.FromContext(r.Context())
		require.True(t, ok)
		got = res.Browser().Name
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", chromeUA)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "Chrome", got)

	_, ok := uahttp.FromContext(context.Background())
	assert.False(t, ok)
}
