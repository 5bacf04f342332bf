package useragent

import (
	"fmt"
	"sync"
)

// Registry holds rules grouped by category, in evaluation order.
// It is mutable until sealed; a sealed registry is read-only and safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	categories []Category
	rules      map[Category][]Rule
	sealed     bool
}

// NewRegistry returns an empty registry with the built-in categories
// os, dist, flavor and browser in that order.
func NewRegistry() *Registry {
	r := &Registry{
		categories: make([]Category, len(builtinCategories)),
		rules:      make(map[Category][]Rule, len(builtinCategories)),
	}
	copy(r.categories, builtinCategories)
	return r
}

// Register appends rules in the given order. A rule with a category the
// registry does not know yet inserts that category at position
// min(priority, number of categories).
func (r *Registry) Register(rules ...Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrRegistrySealed
	}
	for _, rule := range rules {
		if err := validateRule(rule); err != nil {
			return err
		}
	}
	for _, rule := range rules {
		cat := rule.Category()
		if !r.hasCategory(cat) {
			pos := min(max(rule.Priority(), 0), len(r.categories))
			r.categories = append(r.categories, "")
			copy(r.categories[pos+1:], r.categories[pos:])
			r.categories[pos] = cat
		}
		r.rules[cat] = append(r.rules[cat], rule)
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(rules ...Rule) *Registry {
	if err := r.Register(rules...); err != nil {
		panic(err)
	}
	return r
}

// Seal freezes the registry. Further Register calls fail with ErrRegistrySealed.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether the registry is frozen.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Categories returns the category evaluation order.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Rules returns the rules of cat in evaluation order.
func (r *Registry) Rules(cat Category) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rule, len(r.rules[cat]))
	copy(out, r.rules[cat])
	return out
}

// Len returns the total number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, rs := range r.rules {
		n += len(rs)
	}
	return n
}

// groups snapshots the ordered rule groups for a classifier.
func (r *Registry) groups() []group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]group, 0, len(r.categories))
	for _, cat := range r.categories {
		rs := r.rules[cat]
		if len(rs) == 0 {
			continue
		}
		g := group{category: cat, rules: make([]Rule, len(rs))}
		copy(g.rules, rs)
		out = append(out, g)
	}
	return out
}

func (r *Registry) hasCategory(cat Category) bool {
	for _, c := range r.categories {
		if c == cat {
			return true
		}
	}
	return false
}

type group struct {
	category Category
	rules    []Rule
}

func validateRule(rule Rule) error {
	if rule == nil {
		return ErrNilRule
	}
	if d, ok := rule.(*Detector); ok && d == nil {
		return ErrNilRule
	}
	if rule.Name() == "" {
		return fmt.Errorf("%w: category %q", ErrEmptyRuleName, rule.Category())
	}
	if rule.Category() == "" {
		return fmt.Errorf("%w: rule %q", ErrEmptyCategory, rule.Name())
	}
	if d, ok := rule.(*Detector); ok && len(d.LookFor) == 0 && d.MatchFunc == nil {
		return fmt.Errorf("%w: rule %q", ErrNoTrigger, rule.Name())
	}
	return nil
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry preloaded with BuiltinRules.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry().MustRegister(BuiltinRules()...)
	})
	return defaultRegistry
}

// Register adds rules to the default registry. It fails with
// ErrRegistrySealed once any package-level classification has run.
func Register(rules ...Rule) error {
	return DefaultRegistry().Register(rules...)
}
