package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/dmitrymomot/uakit/pkg/logger"
)

// Indexer buffers documents and writes them with the bulk API. It is safe for
// concurrent use. *opensearch.Client satisfies opensearchapi.Transport.
type Indexer struct {
	transport opensearchapi.Transport
	index     string
	batchSize int
	log       *slog.Logger

	mu      sync.Mutex
	buf     bytes.Buffer
	pending int
	indexed int
	closed  bool
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithBatchSize sets how many documents trigger an automatic flush.
func WithBatchSize(n int) IndexerOption {
	return func(ix *Indexer) {
		if n > 0 {
			ix.batchSize = n
		}
	}
}

// WithIndexerLogger sets the logger used for flush reports.
func WithIndexerLogger(l *slog.Logger) IndexerOption {
	return func(ix *Indexer) {
		if l != nil {
			ix.log = l
		}
	}
}

// NewIndexer returns an Indexer writing into index.
func NewIndexer(transport opensearchapi.Transport, index string, opts ...IndexerOption) *Indexer {
	ix := &Indexer{
		transport: transport,
		index:     index,
		batchSize: 500,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Add queues doc and flushes once the batch is full.
func (ix *Indexer) Add(ctx context.Context, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("opensearch: encode document: %w", err)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return ErrIndexerClosed
	}

	ix.buf.WriteString(`{"index":{}}`)
	ix.buf.WriteByte('\n')
	ix.buf.Write(body)
	ix.buf.WriteByte('\n')
	ix.pending++

	if ix.pending >= ix.batchSize {
		return ix.flushLocked(ctx)
	}
	return nil
}

// Flush writes all queued documents.
func (ix *Indexer) Flush(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.flushLocked(ctx)
}

// Close flushes and rejects further documents.
func (ix *Indexer) Close(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.closed {
		return nil
	}
	ix.closed = true
	return ix.flushLocked(ctx)
}

// Indexed returns the number of documents the cluster accepted.
func (ix *Indexer) Indexed() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.indexed
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

func (ix *Indexer) flushLocked(ctx context.Context) error {
	if ix.pending == 0 {
		return nil
	}
	count := ix.pending
	body := bytes.NewReader(bytes.Clone(ix.buf.Bytes()))
	ix.buf.Reset()
	ix.pending = 0

	resp, err := opensearchapi.BulkRequest{Index: ix.index, Body: body}.Do(ctx, ix.transport)
	if err != nil {
		return errors.Join(ErrBulkFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(ErrBulkFailed, err)
	}
	if resp.IsError() {
		return errors.Join(ErrBulkFailed, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(raw)))
	}

	var br bulkResponse
	if err := json.Unmarshal(raw, &br); err != nil {
		return errors.Join(ErrBulkFailed, err)
	}

	failed := 0
	var firstErr string
	for _, item := range br.Items {
		for _, res := range item {
			if res.Error != nil || res.Status >= 300 {
				failed++
				if firstErr == "" && res.Error != nil {
					firstErr = res.Error.Type + ": " + res.Error.Reason
				}
			}
		}
	}
	ix.indexed += count - failed

	ix.log.DebugContext(ctx, "bulk flush",
		logger.Component("opensearch"),
		logger.Count(count),
		slog.Int("failed", failed),
	)
	if failed > 0 {
		return errors.Join(ErrBulkFailed, fmt.Errorf("%d of %d documents rejected (%s)", failed, count, firstErr))
	}
	return nil
}
