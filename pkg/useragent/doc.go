// Package useragent classifies HTTP User-Agent strings into structured client
// facts using ordered substring heuristics.
//
// A classification fills up to four category slots, each holding a name and an
// optional version:
//   - os – platform operating system (Windows, Linux, iOS, ChromeOS, …)
//   - dist – distribution or device family (Ubuntu, Android, iPhone, Roku, …)
//   - flavor – OS flavor (MacOS)
//   - browser – the agent itself: browsers, crawlers, HTTP libraries and apps
//
// Alongside the slots a Result carries a platform name/version pair, a bot flag
// and a device model resolved through the reference tables of package reftable.
//
// Classification is a total function. Input that nothing recognises yields an
// empty Result; it is never an error.
//
// # Architecture
//
// Rules are grouped by category inside a Registry. A Classifier walks the
// categories in order and, within each category, every rule in registration
// order. A matching rule overwrites whatever an earlier rule wrote into the same
// slot, so the last match wins and specific rules are registered after the
// generic ones they refine. Skip tokens keep two rules from firing on the same
// input.
//
//	┌──────────┐  ua  ┌────────────┐  os → dist → flavor → browser  ┌──────────┐
//	│ Classify │─────▶│ Classifier │───────────────────────────────▶│  Result  │
//	└──────────┘      └────────────┘   rule.Apply(ua, res) per rule └──────────┘
//	                                                                      │
//	                                                          Summarize   ▼
//	                                                                ┌──────────┐
//	                                                                │ Summary  │
//	                                                                └──────────┘
//
// Each rule runs behind a recover boundary. A rule that panics is treated as
// not matching, its partial writes are rolled back and the fault is logged.
//
// # Usage
//
//	import "github.com/dmitrymomot/uakit/pkg/useragent"
//
//	res := useragent.Classify(r.UserAgent())
//	if res.Bot {
//	    // skip analytics
//	}
//
//	osLabel, agentLabel := useragent.SummaryLabels(r.UserAgent())
//	log.Printf("client=%s / %s", osLabel, agentLabel)
//
// A dedicated classifier with a logger and a result cache:
//
//	clf := useragent.New(useragent.DefaultRegistry(),
//	    useragent.WithLogger(logger),
//	    useragent.WithCache(4096),
//	)
//	res := clf.Classify(ua, useragent.FillNone())
//
// # Custom rules
//
// Register adds rules to the default registry. It must run before the first
// package-level classification, which seals the registry:
//
//	func init() {
//	    useragent.Register(&useragent.Detector{
//	        RuleName:     "Acme",
//	        RuleCategory: useragent.CategoryBrowser,
//	        LookFor:      []string{"AcmeBot"},
//	        Bot:          true,
//	    })
//	}
//
// A rule for a category the registry does not know creates that category at
// position min(Priority, number of categories).
//
// # Error Handling
//
// Classify never returns an error. Registry.Register reports invalid rules with
// ErrNilRule, ErrEmptyRuleName, ErrEmptyCategory and ErrNoTrigger, and reports
// late registration with ErrRegistrySealed. Recovered rule panics are logged
// wrapped in ErrRuleFault.
//
// # Performance
//
// Every rule is a handful of strings.Contains calls, so a classification is
// bounded by categories × rules × input length. WithCache adds an LRU over whole
// results for workloads that repeat the same header values.
package useragent
