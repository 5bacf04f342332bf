package logger

import (
	"log/slog"
	"strconv"
	"time"
	"unicode/utf8"
)

// MaxUserAgentLen bounds the UserAgent attribute so hostile headers cannot
// bloat log lines.
const MaxUserAgentLen = 256

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors", keyed by position.
// It returns an empty Attr when every error is nil.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error", or returns an empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// UserAgent records a UA string under "user_agent", truncated to MaxUserAgentLen bytes
// on a rune boundary.
func UserAgent(ua string) slog.Attr {
	if len(ua) > MaxUserAgentLen {
		cut := MaxUserAgentLen
		for cut > 0 && !utf8.RuneStart(ua[cut]) {
			cut--
		}
		ua = ua[:cut] + "…"
	}
	return slog.String("user_agent", ua)
}

func Rule(name string) slog.Attr     { return slog.String("rule", name) }
func Category(name string) slog.Attr { return slog.String("category", name) }
func Service(name string) slog.Attr  { return slog.String("service", name) }

// Component records the emitting subsystem under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Source records an input location (file path, s3 URL, "-") under "source".
func Source(src string) slog.Attr {
	return slog.String("source", src)
}

// Dimension records a statistics dimension under "dimension".
func Dimension(name string) slog.Attr {
	return slog.String("dimension", name)
}

// Line records a 1-based input line number.
func Line(n int) slog.Attr {
	return slog.Int("line", n)
}

// Count records a number of processed items.
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
