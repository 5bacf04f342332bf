package useragent

import (
	"strings"

	"github.com/dmitrymomot/uakit/pkg/reftable"
)

// osRules returns the built-in operating system rules in evaluation order.
func osRules() []Rule {
	return []Rule{
		&Detector{
			RuleName:     "Darwin",
			RuleCategory: CategoryOS,
			LookFor:      []string{"Darwin"},
			Platform:     "Darwin",
			VersionFunc:  darwinVersion,
		},
		&Detector{
			RuleName:     "Linux",
			RuleCategory: CategoryOS,
			LookFor:      []string{"Linux"},
			Platform:     "Linux",
			VersionFunc: func(ua, _ string) (string, bool) {
				if !strings.Contains(ua, "Linux ") {
					return "", false
				}
				v := beforeFirst(beforeFirst(afterLast(ua, "Linux "), ";"), ")")
				return nonEmpty(strings.TrimSpace(v))
			},
		},
		&Detector{
			RuleName:     "BlackBerry",
			RuleCategory: CategoryOS,
			LookFor:      []string{"BlackBerry"},
			Platform:     "BlackBerry",
			VersionFunc:  noVersion,
		},
		&Detector{
			RuleName:     "Windows Phone",
			RuleCategory: CategoryOS,
			LookFor:      []string{"Windows Phone OS", "Windows Phone"},
			Markers:      []Marker{{" ", ";"}, {" ", ")"}},
			AllowSpace:   true,
			Platform:     "Windows",
		},
		&Detector{
			RuleName:     "iOS",
			RuleCategory: CategoryOS,
			LookFor:      []string{"iPhone", "iPad", "iPod", "iOS", "IOS,"},
			Skip:         []string{"like iPhone"},
			Markers:      []Marker{{"/", " "}, {"/", ""}, {" ", ";"}, {" ", ")"}},
			AllowSpace:   true,
		},
		&Detector{
			RuleName:     "Macintosh",
			RuleCategory: CategoryOS,
			LookFor:      []string{"Macintosh", "(Apple"},
			VersionFunc:  noVersion,
		},
		&Detector{
			RuleName:     "Windows",
			RuleCategory: CategoryOS,
			LookFor:      []string{"Windows", "windows", ".Win "},
			Skip:         []string{"Windows Phone"},
			Platform:     "Windows",
			VersionFunc:  windowsVersion,
		},
		&Detector{
			RuleName:     "ChromeOS",
			RuleCategory: CategoryOS,
			LookFor:      []string{"CrOS"},
			Platform:     "ChromeOS",
			VersionFunc:  chromeOSVersion,
		},
		&Detector{
			RuleName:     "NokiaS40",
			RuleCategory: CategoryOS,
			LookFor:      []string{"Series40"},
			Platform:     "Nokia S40",
			VersionFunc:  noVersion,
		},
		&Detector{
			RuleName:     "Symbian",
			RuleCategory: CategoryOS,
			LookFor:      []string{"Symbian", "SymbianOS"},
			Platform:     "Symbian",
		},
		&Detector{
			RuleName:     "PlayStation",
			RuleCategory: CategoryOS,
			LookFor:      []string{"PlayStation", "PLAYSTATION"},
			Markers:      []Marker{{" ", ")"}},
			AllowSpace:   true,
			Platform:     "PlayStation",
		},
		&Detector{
			RuleName:     "Xbox",
			RuleCategory: CategoryOS,
			LookFor:      []string{"XBox", "XboxOne"},
			Markers:      []Marker{{" ", ")"}},
			AllowSpace:   true,
			Platform:     "XBox",
		},
		&Detector{
			RuleName:     "Axios",
			RuleCategory: CategoryOS,
			LookFor:      []string{"axios"},
			Platform:     "axios",
			VersionFunc: func(ua, _ string) (string, bool) {
				return nonEmpty(strings.TrimSpace(afterLast(ua, "/")))
			},
		},
	}
}

func noVersion(string, string) (string, bool) { return "", false }

func darwinVersion(ua, _ string) (string, bool) {
	if !strings.Contains(ua, "Darwin/") {
		return "", false
	}
	v := afterLast(ua, "Darwin/")
	return reftable.Darwin().GetOr(v, "Mac OS X / iOS - "+v), true
}

// windowsVersion resolves the Windows release from the first matching
// header convention, most specific first.
func windowsVersion(ua, _ string) (string, bool) {
	win := reftable.Windows()
	switch {
	case strings.Contains(ua, "OS: "):
		v := strings.TrimSpace(beforeFirst(afterLast(ua, "OS: "), " "))
		return nonEmpty(win.GetOr(v, v))
	case strings.Contains(ua, "Windows-Update-Agent"):
		return reftable.Unknown, true
	case strings.Contains(ua, ".Win "):
		v := strings.TrimSpace(beforeFirst(afterLast(ua, ".Win "), " "))
		return nonEmpty(win.GetOr(v, v))
	case strings.Contains(ua, "Win "):
		v := strings.TrimSpace(beforeFirst(afterLast(ua, "Win "), ";"))
		return nonEmpty(win.GetOr(v, v))
	case strings.Contains(ua, "Windows/"):
		v := strings.TrimSpace(beforeFirst(afterLast(ua, "Windows/"), " "))
		return findWindows(win, v), true
	case strings.Contains(ua, "PC-Windows;"):
		v := strings.TrimSpace(beforeFirst(afterLast(ua, "PC-Windows;"), ";"))
		return findWindows(win, v), true
	}

	v := afterLast(ua, "Windows")
	v = beforeFirst(strings.ReplaceAll(v, ",", ";"), ";")
	v = strings.TrimSpace(strings.ReplaceAll(v, "/", ""))
	v = beforeFirst(v, ")")
	return findWindows(win, v), true
}

// findWindows fuzzy-matches a partial version code. An empty code is Unknown.
func findWindows(win *reftable.Table, v string) string {
	if v == "" {
		return reftable.Unknown
	}
	if label, ok := win.Find(v); ok {
		return label
	}
	return v
}

func chromeOSVersion(ua, token string) (string, bool) {
	open, sep := " ", " "
	if strings.Contains(ua, token+"+") {
		open, sep = "+", "+"
	}
	part, ok := field(afterLast(ua, token+open), sep, 1)
	if !ok {
		return "", false
	}
	part = strings.TrimSpace(part)
	if part == "" {
		return "", false
	}
	return nonEmpty(part[:len(part)-1])
}
