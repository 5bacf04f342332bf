package useragent

import "errors"

var (
	ErrNilRule        = errors.New("nil rule")
	ErrEmptyRuleName  = errors.New("rule name is empty")
	ErrEmptyCategory  = errors.New("rule category is empty")
	ErrNoTrigger      = errors.New("rule has no look-for tokens and no custom matcher")
	ErrRegistrySealed = errors.New("registry is sealed, rules must be registered before the first classification")

	// ErrRuleFault wraps a panic recovered from a rule. It is logged, never returned by Classify.
	ErrRuleFault = errors.New("rule fault")
)
