package useragent

import "strings"

// Rule is one matching heuristic. The registry only depends on this
// interface; Detector is the stock implementation used by every built-in rule.
type Rule interface {
	// Name is the display name written into the category slot.
	Name() string
	// Category is the result slot the rule writes.
	Category() Category
	// Priority positions a category that is not yet known to the registry.
	Priority() int
	// Match reports whether the rule applies and returns the trigger token that fired.
	Match(ua string) (string, bool)
	// ExtractVersion carves the version out of ua after token.
	ExtractVersion(ua, token string) (string, bool)
	// ExtractModel returns a device model for ua.
	ExtractModel(ua, token string) (string, bool)
	// Apply runs the full match and writes the result. It returns whether the rule matched.
	Apply(ua string, res *Result) bool
}

// Marker is a (prefix, suffix) delimiter pair used to carve a version out of
// the text that follows a matched token. An empty Suffix means "to the end".
type Marker struct {
	Prefix string
	Suffix string
}

// Default marker sets per category.
var (
	osMarkers      = []Marker{{Prefix: ";", Suffix: " "}}
	genericMarkers = []Marker{{Prefix: "/", Suffix: " "}}
)

// Detector is a declarative Rule. Zero-value fields fall back to the category
// defaults: priority 10, markers ("/", " "), or (";", " ") with whitespace
// allowed for CategoryOS.
//
// MatchFunc, VersionFunc and ModelFunc replace the corresponding default step.
// Skip tokens are always checked first, even when MatchFunc is set.
type Detector struct {
	RuleName     string
	RuleCategory Category
	RulePriority int

	LookFor []string
	Skip    []string
	Markers []Marker

	// AllowSpace keeps internal whitespace in marker-extracted versions.
	AllowSpace bool

	// Platform, when set, is written as the result platform with the extracted version.
	Platform string
	Bot      bool

	MatchFunc   func(ua string) (string, bool)
	VersionFunc func(ua, token string) (string, bool)
	ModelFunc   func(ua, token string) (string, bool)
}

var _ Rule = (*Detector)(nil)

func (d *Detector) Name() string       { return d.RuleName }
func (d *Detector) Category() Category { return d.RuleCategory }

func (d *Detector) Priority() int {
	if d.RulePriority == 0 {
		return DefaultPriority
	}
	return d.RulePriority
}

// Match returns the first look-for token present in ua. Any skip token
// present in ua aborts the match.
func (d *Detector) Match(ua string) (string, bool) {
	for _, s := range d.Skip {
		if strings.Contains(ua, s) {
			return "", false
		}
	}
	if d.MatchFunc != nil {
		return d.MatchFunc(ua)
	}
	for _, tok := range d.LookFor {
		if strings.Contains(ua, tok) {
			return tok, true
		}
	}
	return "", false
}

func (d *Detector) ExtractVersion(ua, token string) (string, bool) {
	if d.VersionFunc != nil {
		v, ok := d.VersionFunc(ua, token)
		if v == "" {
			return "", false
		}
		return v, ok
	}
	markers, allowSpace := d.markers()
	return ExtractWithMarkers(ua, token, markers, allowSpace)
}

func (d *Detector) ExtractModel(ua, token string) (string, bool) {
	if d.ModelFunc == nil {
		return "", false
	}
	return d.ModelFunc(ua, token)
}

// Apply matches ua and, on success, writes the category slot, bot flag,
// platform and model into res. Extraction happens before any write.
func (d *Detector) Apply(ua string, res *Result) bool {
	token, ok := d.Match(ua)
	if !ok {
		return false
	}
	version, _ := d.ExtractVersion(ua, token)
	model, hasModel := d.ExtractModel(ua, token)

	res.Set(d.RuleCategory, Info{Name: d.RuleName, Version: version})
	res.Bot = d.Bot
	if d.Platform != "" {
		res.Platform = Info{Name: d.Platform, Version: version}
	}
	if hasModel {
		res.Model = model
	}
	return true
}

func (d *Detector) markers() ([]Marker, bool) {
	if len(d.Markers) > 0 {
		return d.Markers, d.AllowSpace
	}
	if d.RuleCategory == CategoryOS {
		return osMarkers, true
	}
	return genericMarkers, d.AllowSpace
}

// ExtractWithMarkers takes the text after the first occurrence of token and
// tries each marker in order. A marker applies when that text starts with its
// prefix and contains its suffix. The first applicable marker decides the
// outcome; an empty candidate is reported as absent.
func ExtractWithMarkers(ua, token string, markers []Marker, allowSpace bool) (string, bool) {
	rest := afterFirst(ua, token)
	for _, m := range markers {
		if !strings.HasPrefix(rest, m.Prefix) || !strings.Contains(rest, m.Suffix) {
			continue
		}
		v := rest[len(m.Prefix):]
		if m.Suffix != "" {
			v = beforeFirst(v, m.Suffix)
		}
		if !allowSpace {
			fields := strings.Fields(v)
			if len(fields) == 0 {
				return "", false
			}
			v = fields[0]
		}
		return nonEmpty(v)
	}
	return "", false
}
