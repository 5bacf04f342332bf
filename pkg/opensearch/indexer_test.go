package opensearch_test

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uakit/pkg/opensearch"
)

type fakeTransport struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
	status   int
	respond  func(lines int) string
}

func (f *fakeTransport) Perform(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	f.requests = append(f.requests, req)
	f.bodies = append(f.bodies, string(body))

	docs := 0
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		docs++
	}
	docs /= 2

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	payload := `{"errors":false,"items":[]}`
	if f.respond != nil {
		payload = f.respond(docs)
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(payload)),
	}, nil
}

type record struct {
	UserAgent string `json:"user_agent"`
}

func TestIndexerBatches(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{}
	ix := opensearch.NewIndexer(ft, "uas", opensearch.WithBatchSize(2))
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, record{"a"}))
	assert.Empty(t, ft.requests)
	require.NoError(t, ix.Add(ctx, record{"b"}))
	require.Len(t, ft.requests, 1)

	req := ft.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/uas/_bulk", req.URL.Path)
	assert.Equal(t,
		"{\"index\":{}}\n{\"user_agent\":\"a\"}\n{\"index\":{}}\n{\"user_agent\":\"b\"}\n",
		ft.bodies[0])

	require.NoError(t, ix.Add(ctx, record{"c"}))
	require.NoError(t, ix.Close(ctx))
	require.Len(t, ft.requests, 2)
	assert.Equal(t, 3, ix.Indexed())

	assert.ErrorIs(t, ix.Add(ctx, record{"d"}), opensearch.ErrIndexerClosed)
	assert.NoError(t, ix.Close(ctx))
}

func TestIndexerFlushEmpty(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{}
	ix := opensearch.NewIndexer(ft, "uas")
	require.NoError(t, ix.Flush(context.Background()))
	assert.Empty(t, ft.requests)
}

func TestIndexerErrors(t *testing.T) {
	t.Parallel()

	t.Run("http error", func(t *testing.T) {
		t.Parallel()
		ft := &fakeTransport{status: http.StatusBadRequest, respond: func(int) string { return `{"error":"bad"}` }}
		ix := opensearch.NewIndexer(ft, "uas")
		require.NoError(t, ix.Add(context.Background(), record{"a"}))
		err := ix.Flush(context.Background())
		assert.ErrorIs(t, err, opensearch.ErrBulkFailed)
		assert.Equal(t, 0, ix.Indexed())
	})

	t.Run("rejected items", func(t *testing.T) {
		t.Parallel()
		ft := &fakeTransport{respond: func(int) string {
			return `{"errors":true,"items":[
				{"index":{"status":201}},
				{"index":{"status":400,"error":{"type":"mapper_parsing_exception","reason":"bad field"}}}
			]}`
		}}
		ix := opensearch.NewIndexer(ft, "uas")
		ctx := context.Background()
		require.NoError(t, ix.Add(ctx, record{"a"}))
		require.NoError(t, ix.Add(ctx, record{"b"}))

		err := ix.Flush(ctx)
		require.ErrorIs(t, err, opensearch.ErrBulkFailed)
		assert.Contains(t, err.Error(), "mapper_parsing_exception: bad field")
		assert.Equal(t, 1, ix.Indexed())
	})

	t.Run("unencodable document", func(t *testing.T) {
		t.Parallel()
		ix := opensearch.NewIndexer(&fakeTransport{}, "uas")
		assert.Error(t, ix.Add(context.Background(), make(chan int)))
	})
}

func TestConfigEnabled(t *testing.T) {
	t.Parallel()

	assert.False(t, opensearch.Config{}.Enabled())
	assert.True(t, opensearch.Config{Addresses: []string{"http://localhost:9200"}}.Enabled())

	_, err := opensearch.New(context.Background(), opensearch.Config{})
	assert.ErrorIs(t, err, opensearch.ErrNoAddresses)
}
