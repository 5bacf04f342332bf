package useragent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/uakit/pkg/logger"
)

// Classifier applies a sealed registry to UA strings. It is safe for concurrent use.
type Classifier struct {
	groups   []group
	logger   *slog.Logger
	cache    *resultCache
	fillNone bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used to report rule faults.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCache memoizes up to size results. Non-positive sizes disable caching.
func WithCache(size int) Option {
	return func(c *Classifier) {
		if size > 0 {
			c.cache = newResultCache(size)
		}
	}
}

// WithFillNone makes fill-none the default for every Classify call.
func WithFillNone(enabled bool) Option {
	return func(c *Classifier) {
		c.fillNone = enabled
	}
}

// ClassifyOption adjusts a single Classify call.
type ClassifyOption func(*classifyConfig)

type classifyConfig struct {
	fillNone bool
}

// FillNone ensures the os and browser slots are present with null name and
// version when nothing matched them.
func FillNone() ClassifyOption {
	return func(c *classifyConfig) { c.fillNone = true }
}

// New seals reg and returns a classifier over a snapshot of its rules.
// A nil reg uses DefaultRegistry.
func New(reg *Registry, opts ...Option) *Classifier {
	if reg == nil {
		reg = DefaultRegistry()
	}
	reg.Seal()

	c := &Classifier{
		groups: reg.groups(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify runs every rule against ua in registry order and returns a fresh
// result. It never fails: a rule that panics is treated as not matching and
// its partial writes are rolled back.
func (c *Classifier) Classify(ua string, opts ...ClassifyOption) *Result {
	cfg := classifyConfig{fillNone: c.fillNone}
	for _, opt := range opts {
		opt(&cfg)
	}

	key := cacheKey{ua: ua, fillNone: cfg.fillNone}
	if c.cache != nil {
		if res, ok := c.cache.get(key); ok {
			return res
		}
	}

	res := NewResult()
	for _, g := range c.groups {
		for _, rule := range g.rules {
			c.apply(rule, g.category, ua, res)
		}
	}
	if cfg.fillNone {
		res.fill()
	}

	if c.cache != nil {
		c.cache.put(key, res)
	}
	return res
}

// Summary classifies ua and flattens the result.
func (c *Classifier) Summary(ua string) Summary {
	return Summarize(c.Classify(ua))
}

// CacheLen returns the number of memoized results.
func (c *Classifier) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.len()
}

func (c *Classifier) apply(rule Rule, cat Category, ua string, res *Result) {
	snap := res.snapshot(cat)
	defer func() {
		if r := recover(); r != nil {
			res.restore(cat, snap)
			c.logger.LogAttrs(context.Background(), slog.LevelWarn, "rule fault recovered",
				logger.Rule(rule.Name()),
				logger.Category(string(cat)),
				logger.UserAgent(ua),
				logger.Error(fmt.Errorf("%w: %v", ErrRuleFault, r)),
			)
		}
	}()
	rule.Apply(ua, res)
}

var (
	defaultClassifier     *Classifier
	defaultClassifierOnce sync.Once
)

// Default returns the process-wide classifier over DefaultRegistry.
// The first call seals the default registry.
func Default() *Classifier {
	defaultClassifierOnce.Do(func() {
		defaultClassifier = New(DefaultRegistry())
	})
	return defaultClassifier
}

// Classify classifies ua with the default classifier.
func Classify(ua string, opts ...ClassifyOption) *Result {
	return Default().Classify(ua, opts...)
}

// SummaryTuple classifies ua and returns (osName, osVersion, agentName, agentVersion).
func SummaryTuple(ua string) (string, string, string, string) {
	return Summarize(Classify(ua)).Tuple()
}

// SummaryLabels classifies ua and returns (osLabel, agentLabel).
func SummaryLabels(ua string) (string, string) {
	return Summarize(Classify(ua)).Labels()
}
