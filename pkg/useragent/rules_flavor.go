package useragent

import (
	"strings"

	"github.com/dmitrymomot/uakit/pkg/reftable"
)

func flavorRules() []Rule {
	return []Rule{
		&Detector{
			RuleName:     "MacOS",
			RuleCategory: CategoryFlavor,
			LookFor:      []string{"Mac OS", "MacOS", "Mac;", "macOS/", "macOS,", "(macOS", "Mac/", ".Mac"},
			Skip:         []string{"iPhone", "iPad", "iPod"},
			Platform:     "Mac OS",
			VersionFunc:  macOSVersion,
			ModelFunc:    macModel,
		},
	}
}

func macOSVersion(ua, _ string) (string, bool) {
	switch {
	case strings.Contains(ua, "Mac;OSX;"):
		return nonEmpty(beforeFirst(afterLast(ua, "Mac;OSX;"), " "))
	case strings.Contains(ua, "macOS/"):
		return nonEmpty(beforeFirst(afterLast(ua, "macOS/"), " "))
	case strings.Contains(ua, "Mac/"):
		return nonEmpty(afterLast(ua, "Mac/"))
	case strings.Contains(ua, "(macOS"):
		return nonEmpty(strings.TrimSpace(beforeFirst(beforeFirst(afterLast(ua, "(macOS"), "/"), ";")))
	case strings.Contains(ua, "macOS,"):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "OS,"), ",")))
	case strings.Contains(ua, "[Mac OS X,"):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, "[Mac OS X,"), ",")))
	case strings.Contains(ua, ".Mac "):
		return nonEmpty(strings.TrimSpace(beforeFirst(afterLast(ua, ".Mac "), " ")))
	}

	// "Intel Mac OS X 10_15_7) AppleWebKit" yields "X 10.15.7". A ';'
	// anywhere in the tail takes precedence over ')'.
	part := strings.TrimSpace(afterLast(ua, "Mac OS"))
	for _, end := range []string{";", ")"} {
		if i := strings.Index(part, end); i >= 0 {
			return nonEmpty(strings.ReplaceAll(part[:i], "_", "."))
		}
	}
	return "", false
}

func macModel(ua, _ string) (string, bool) {
	switch {
	case strings.Contains(ua, ",Mac"):
		return reftable.Mac().Get("Mac" + beforeFirst(afterLast(ua, ",Mac"), "]")), true
	case strings.Contains(ua, "; Mac"):
		return reftable.Mac().Get("Mac" + beforeFirst(afterLast(ua, "; Mac"), ")")), true
	}
	return reftable.Unknown, true
}
