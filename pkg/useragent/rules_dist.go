package useragent

import (
	"strings"

	"github.com/dmitrymomot/uakit/pkg/reftable"
)

// distRules returns the built-in distribution and device-family rules in evaluation order.
func distRules() []Rule {
	return []Rule{
		&Detector{
			RuleName:     "Roku",
			RuleCategory: CategoryDist,
			LookFor:      []string{"Roku/DVP-", "RokuOS"},
			Platform:     "Linux",
			VersionFunc:  rokuVersion,
		},
		&Detector{
			RuleName:     "BlackberryPlaybook",
			RuleCategory: CategoryDist,
			LookFor:      []string{"PlayBook"},
			Platform:     "BlackBerry",
			VersionFunc:  noVersion,
		},
		&Detector{
			RuleName:     "iPhone",
			RuleCategory: CategoryDist,
			LookFor:      []string{"iPhone"},
			Skip:         []string{"like iPhone", "iPad"},
			Platform:     "iOS",
			VersionFunc:  iPhoneVersion,
			ModelFunc: appleModel(reftable.IPhone, []appleModelSource{
				{marker: "(iPhone", prefix: "iPhone", end: ";"},
				{marker: ",iPhone", prefix: "iPhone", end: "]"},
				{marker: "hw/iPhone", prefix: "iPhone", end: "]", underscores: true},
			}),
		},
		&Detector{
			RuleName:     "IPad",
			RuleCategory: CategoryDist,
			LookFor:      []string{"iPad"},
			Platform:     "iOS",
			VersionFunc:  iPadVersion,
			ModelFunc: appleModel(reftable.IPad, []appleModelSource{
				{marker: "(iPad", prefix: "iPad", end: ";"},
				{marker: ",iPad", prefix: "iPad", end: "]"},
				{marker: "hw/iPad", prefix: "iPad", end: "]", underscores: true},
			}),
		},
		&Detector{
			RuleName:     "IPod",
			RuleCategory: CategoryDist,
			LookFor:      []string{"iPod;", "iPod/", "iPod touch"},
			Platform:     "iOS",
			VersionFunc:  iPodVersion,
			ModelFunc: func(ua, _ string) (string, bool) {
				return reftable.IPod().Get("iPod" + beforeFirst(afterLast(ua, "(iPod"), ";")), true
			},
		},
		&Detector{
			RuleName:     "AppleWatch",
			RuleCategory: CategoryDist,
			LookFor:      []string{"Watch OS"},
			Platform:     "iOS",
			VersionFunc:  commaOSVersion,
			ModelFunc: appleModel(reftable.Watch, []appleModelSource{
				{marker: ",Watch", prefix: "Watch", end: "]"},
			}),
		},
		&Detector{
			RuleName:     "AppleTV",
			RuleCategory: CategoryDist,
			LookFor:      []string{"Apple TVOS"},
			Platform:     "iOS",
			VersionFunc:  commaOSVersion,
			ModelFunc: appleModel(reftable.AppleTV, []appleModelSource{
				{marker: ",AppleTV", prefix: "AppleTV", end: "]"},
			}),
		},
		&Detector{RuleName: "Ubuntu", RuleCategory: CategoryDist, LookFor: []string{"Ubuntu"}},
		&Detector{RuleName: "Debian", RuleCategory: CategoryDist, LookFor: []string{"Debian"}},
		&Detector{RuleName: "Fedora", RuleCategory: CategoryDist, LookFor: []string{"Fedora"}},
		&Detector{RuleName: "RedHat", RuleCategory: CategoryDist, LookFor: []string{"Red Hat"}},
		&Detector{RuleName: "Rocky", RuleCategory: CategoryDist, LookFor: []string{"Rocky"}},
		&Detector{
			RuleName:     "Tizen",
			RuleCategory: CategoryDist,
			LookFor:      []string{"Tizen"},
			Markers:      []Marker{{"/", " "}, {" ", ")"}},
			Platform:     "Linux",
			ModelFunc:    tizenModel,
		},
		&Detector{
			RuleName:     "Android",
			RuleCategory: CategoryDist,
			LookFor:      []string{"Android"},
			Skip:         []string{"Windows Phone"},
			Platform:     "Android",
			VersionFunc:  androidVersion,
			ModelFunc:    androidModel,
		},
		&Detector{
			RuleName:     "WebOS",
			RuleCategory: CategoryDist,
			LookFor:      []string{"hpwOS"},
			VersionFunc: func(ua, _ string) (string, bool) {
				return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "hpwOS/"), ";")))
			},
		},
	}
}

func rokuVersion(ua, _ string) (string, bool) {
	switch {
	case strings.Contains(ua, "Roku/DVP-"):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "("), ")")))
	case strings.Contains(ua, "RokuOS"):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "/"), ",")))
	}
	return reftable.Unknown, true
}

func iPhoneVersion(ua, _ string) (string, bool) {
	switch {
	case strings.Contains(ua, "iPhone/iOS"):
		return nonEmpty(strings.TrimSpace(afterLast(ua, "iPhone/iOS ")))
	case strings.Contains(ua, "iPhone/"):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "iPhone/"), " ")))
	case strings.Contains(ua, "(iPhone; iOS"):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "iPhone; iOS"), ";")))
	case strings.Contains(ua, "OS,"):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "OS,"), ",")))
	case strings.Contains(ua, "; CPU OS "):
		return underscoreVersion(beforeFirst(afterLast(ua, "; CPU OS "), ";"))
	case !strings.Contains(ua, "iPhone OS"):
		return "", false
	}
	return underscoreVersion(afterLast(ua, "iPhone OS"))
}

func iPadVersion(ua, _ string) (string, bool) {
	switch {
	case strings.Contains(ua, "iPad/iPadOS"):
		return nonEmpty(strings.TrimSpace(afterLast(ua, "iPad/iPadOS ")))
	case strings.Contains(ua, "iPad/"):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "iPad/"), " ")))
	case strings.Contains(ua, "OS,"):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "OS,"), ",")))
	case !strings.Contains(ua, "CPU OS "):
		return "", false
	}
	return underscoreVersion(afterLast(ua, "CPU OS "))
}

func iPodVersion(ua, _ string) (string, bool) {
	if strings.Contains(ua, "iPad/iPadOS") {
		return nonEmpty(strings.TrimSpace(afterLast(ua, "iPad/iPadOS ")))
	}
	if !strings.Contains(ua, "CPU OS ") {
		return "", false
	}
	return underscoreVersion(afterLast(ua, "CPU OS "))
}

// underscoreVersion turns "17_0 like Mac OS X" into "17.0". Text without a
// trailing space-separated part carries no version.
func underscoreVersion(part string) (string, bool) {
	part = strings.TrimSpace(part)
	i := strings.Index(part, " ")
	if i < 0 {
		return "", false
	}
	return nonEmpty(strings.ReplaceAll(part[:i], "_", "."))
}

func commaOSVersion(ua, _ string) (string, bool) {
	if !strings.Contains(ua, "OS,") {
		return "", false
	}
	return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "OS,"), ",")))
}

// appleModelSource describes one place an Apple hardware code can appear,
// e.g. "(iPhone15,4;" or "hw/iPhone15_4]".
type appleModelSource struct {
	marker      string
	prefix      string
	end         string
	underscores bool
}

// appleModel resolves the hardware code from the first source present in ua
// against table. Codes missing from the table resolve to Unknown.
func appleModel(table func() *reftable.Table, sources []appleModelSource) func(string, string) (string, bool) {
	return func(ua, _ string) (string, bool) {
		for _, src := range sources {
			if !strings.Contains(ua, src.marker) {
				continue
			}
			s := ua
			if src.underscores {
				s = strings.ReplaceAll(s, "_", ",")
			}
			return table().Get(src.prefix + beforeFirst(afterLast(s, src.marker), src.end)), true
		}
		return reftable.Unknown, true
	}
}

func tizenModel(ua, _ string) (string, bool) {
	switch {
	case strings.Contains(ua, "Samsung;"):
		return "Samsung: " + strings.TrimSpace(beforeFirst(afterLast(ua, "Samsung;"), ";")), true
	case strings.Contains(ua, "SMART-TV"):
		return "Smart TV", true
	}
	return reftable.Unknown, true
}

func androidVersion(ua, _ string) (string, bool) {
	switch {
	case strings.Contains(ua, "Android "):
		part, _ := field(ua, "Android ", 1)
		part = beforeFirst(strings.ReplaceAll(part, ")", ";"), ";")
		return nonEmpty(strings.TrimSpace(part))
	case strings.Contains(ua, "Android/"):
		part, _ := field(ua, "Android/", 1)
		part = beforeFirst(beforeFirst(strings.ReplaceAll(part, ")", ";"), " "), ";")
		return nonEmpty(strings.TrimSpace(part))
	}
	part := beforeFirst(strings.ReplaceAll(afterLast(ua, "Android"), ")", ";"), ";")
	return nonEmpty(strings.TrimSpace(part))
}

// androidModel takes the device name that follows the Android version,
// e.g. "Pixel 7" in "(Linux; Android 13; Pixel 7) AppleWebKit".
func androidModel(ua, token string) (string, bool) {
	var part string
	switch {
	case strings.Contains(ua, ") Apple"):
		part = strings.ReplaceAll(afterLast(ua, token), ") Apple", ";")
	case strings.Contains(ua, "en_"):
		part = afterLast(ua, "en_")
	case strings.Contains(ua, ")"):
		part = strings.ReplaceAll(afterLast(ua, token), ")", ";")
	default:
		return reftable.Unknown, true
	}
	m, ok := field(part, ";", 1)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(m), true
}
