package uastats

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/uakit/pkg/logger"
	"github.com/dmitrymomot/uakit/pkg/useragent"
)

// Recorder classifies UA strings and counts them. Store failures are logged
// and never surface to the caller.
type Recorder struct {
	store      Store
	classifier *useragent.Classifier
	log        *slog.Logger
	now        func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

func WithRecorderLogger(l *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock overrides time.Now for event timestamps.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder returns a Recorder. A nil classifier means useragent.Default().
func NewRecorder(store Store, classifier *useragent.Classifier, opts ...RecorderOption) *Recorder {
	if classifier == nil {
		classifier = useragent.Default()
	}
	r := &Recorder{
		store:      store,
		classifier: classifier,
		log:        logger.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Observe classifies ua, records the summary and returns it.
func (r *Recorder) Observe(ctx context.Context, ua string) useragent.Summary {
	s := r.classifier.Summary(ua)
	r.Record(ctx, s)
	return s
}

// Record counts an already computed summary.
func (r *Recorder) Record(ctx context.Context, s useragent.Summary) {
	if r.store == nil {
		return
	}
	if err := r.store.Record(ctx, EventFromSummary(s, r.now())); err != nil {
		r.log.WarnContext(ctx, "stats record failed",
			logger.Component("uastats"),
			logger.Error(err),
		)
	}
}

// Store returns the underlying store, nil when counting is disabled.
func (r *Recorder) Store() Store { return r.store }
