package useragent

import "strings"

// afterLast returns the text after the last occurrence of sep, or s when sep is absent.
func afterLast(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

// afterFirst returns the text after the first occurrence of sep, or s when sep is absent.
func afterFirst(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

// beforeFirst returns the text before the first occurrence of sep, or s when sep is absent.
func beforeFirst(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}

// field returns the n-th piece of s split by sep.
func field(s, sep string, n int) (string, bool) {
	parts := strings.SplitN(s, sep, n+2)
	if len(parts) <= n {
		return "", false
	}
	return parts[n], true
}

// dropFirst drops the first byte of s. Callers only use it on ASCII delimiters.
func dropFirst(s string) string {
	if s == "" {
		return s
	}
	return s[1:]
}

// truncateRunes keeps at most n runes of s.
func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func nonEmpty(s string) (string, bool) {
	return s, s != ""
}
