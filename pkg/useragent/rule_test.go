package useragent_test

import (
	"testing"

	"github.com/dmitrymomot/uakit/pkg/useragent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWithMarkers(t *testing.T) {
	tests := []struct {
		name       string
		ua         string
		token      string
		markers    []useragent.Marker
		allowSpace bool
		expected   string
		found      bool
	}{
		{
			name:     "falls back to second marker",
			ua:       "Tok/1.2.3 foo",
			token:    "Tok",
			markers:  []useragent.Marker{{Prefix: "/", Suffix: ";"}, {Prefix: "/", Suffix: " "}},
			expected: "1.2.3",
			found:    true,
		},
		{
			name:     "first applicable marker wins",
			ua:       "Tok/1.2; x y",
			token:    "Tok",
			markers:  []useragent.Marker{{Prefix: "/", Suffix: ";"}, {Prefix: "/", Suffix: " "}},
			expected: "1.2",
			found:    true,
		},
		{
			name:     "empty suffix runs to the end",
			ua:       "Firefox/117.0",
			token:    "Firefox",
			markers:  []useragent.Marker{{Prefix: "/", Suffix: ""}},
			expected: "117.0",
			found:    true,
		},
		{
			name:     "whitespace truncates by default",
			ua:       "PlayStation 4 5.55)",
			token:    "PlayStation",
			markers:  []useragent.Marker{{Prefix: " ", Suffix: ")"}},
			expected: "4",
			found:    true,
		},
		{
			name:       "whitespace kept when allowed",
			ua:         "PlayStation 4 5.55)",
			token:      "PlayStation",
			markers:    []useragent.Marker{{Prefix: " ", Suffix: ")"}},
			allowSpace: true,
			expected:   "4 5.55",
			found:      true,
		},
		{
			name:    "no marker applies",
			ua:      "Tok-1.2.3",
			token:   "Tok",
			markers: []useragent.Marker{{Prefix: "/", Suffix: " "}},
		},
		{
			name:    "empty candidate is absent",
			ua:      "Tok/ next",
			token:   "Tok",
			markers: []useragent.Marker{{Prefix: "/", Suffix: " "}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := useragent.ExtractWithMarkers(tc.ua, tc.token, tc.markers, tc.allowSpace)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestDetectorMatch(t *testing.T) {
	d := &useragent.Detector{
		RuleName:     "Tok",
		RuleCategory: useragent.CategoryBrowser,
		LookFor:      []string{"Tok", "Alt"},
		Skip:         []string{"NotTok"},
	}

	t.Run("first present token", func(t *testing.T) {
		token, ok := d.Match("Alt/1 Tok/2")
		require.True(t, ok)
		assert.Equal(t, "Tok", token)
	})

	t.Run("exclusion short-circuits", func(t *testing.T) {
		_, ok := d.Match("NotTok/1")
		assert.False(t, ok)

		_, ok = d.Match("Tok/1 NotTok")
		assert.False(t, ok)
	})

	t.Run("exclusion applies before custom matcher", func(t *testing.T) {
		custom := &useragent.Detector{
			RuleName:     "Custom",
			RuleCategory: useragent.CategoryBrowser,
			Skip:         []string{"Edge"},
			MatchFunc:    func(string) (string, bool) { return "x", true },
		}
		_, ok := custom.Match("Edge/1")
		assert.False(t, ok)

		token, ok := custom.Match("anything")
		assert.True(t, ok)
		assert.Equal(t, "x", token)
	})

	t.Run("no token", func(t *testing.T) {
		_, ok := d.Match("Mozilla/5.0")
		assert.False(t, ok)
	})
}

func TestDetectorDefaults(t *testing.T) {
	t.Run("priority", func(t *testing.T) {
		d := &useragent.Detector{RuleName: "x", RuleCategory: useragent.CategoryOS, LookFor: []string{"x"}}
		assert.Equal(t, useragent.DefaultPriority, d.Priority())

		d.RulePriority = 2
		assert.Equal(t, 2, d.Priority())
	})

	t.Run("os markers start at semicolon", func(t *testing.T) {
		d := &useragent.Detector{RuleName: "Sym", RuleCategory: useragent.CategoryOS, LookFor: []string{"SymbianOS"}}
		v, ok := d.ExtractVersion("SymbianOS;9.2 Series60", "SymbianOS")
		require.True(t, ok)
		assert.Equal(t, "9.2", v)

		_, ok = d.ExtractVersion("SymbianOS/9.2 Series60", "SymbianOS")
		assert.False(t, ok)
	})

	t.Run("browser markers stop at whitespace", func(t *testing.T) {
		d := &useragent.Detector{RuleName: "UC", RuleCategory: useragent.CategoryBrowser, LookFor: []string{"UCBrowser"}}
		v, ok := d.ExtractVersion("UCBrowser/13.4.0.1306 Mobile", "UCBrowser")
		require.True(t, ok)
		assert.Equal(t, "13.4.0.1306", v)
	})

	t.Run("no model by default", func(t *testing.T) {
		d := &useragent.Detector{RuleName: "UC", RuleCategory: useragent.CategoryBrowser, LookFor: []string{"UCBrowser"}}
		_, ok := d.ExtractModel("UCBrowser/13", "UCBrowser")
		assert.False(t, ok)
	})
}

func TestDetectorApply(t *testing.T) {
	t.Run("writes slot platform and bot", func(t *testing.T) {
		d := &useragent.Detector{
			RuleName:     "Crawler",
			RuleCategory: useragent.CategoryBrowser,
			LookFor:      []string{"Crawler"},
			Platform:     "Web",
			Bot:          true,
		}
		res := useragent.NewResult()
		require.True(t, d.Apply("Crawler/3.1 (+http://example.com)", res))

		assert.Equal(t, useragent.Info{Name: "Crawler", Version: "3.1"}, res.Browser())
		assert.Equal(t, useragent.Info{Name: "Web", Version: "3.1"}, res.Platform)
		assert.True(t, res.Bot)
		assert.Empty(t, res.Model)
	})

	t.Run("model written only when extracted", func(t *testing.T) {
		res := useragent.NewResult()
		res.Model = "kept"

		plain := &useragent.Detector{RuleName: "A", RuleCategory: useragent.CategoryDist, LookFor: []string{"A"}}
		require.True(t, plain.Apply("A/1", res))
		assert.Equal(t, "kept", res.Model)

		withModel := &useragent.Detector{
			RuleName:     "B",
			RuleCategory: useragent.CategoryDist,
			LookFor:      []string{"B"},
			ModelFunc:    func(string, string) (string, bool) { return "Device", true },
		}
		require.True(t, withModel.Apply("B/1", res))
		assert.Equal(t, "Device", res.Model)
	})

	t.Run("bot is assigned not accumulated", func(t *testing.T) {
		res := useragent.NewResult()
		res.Bot = true

		d := &useragent.Detector{RuleName: "Human", RuleCategory: useragent.CategoryBrowser, LookFor: []string{"Human"}}
		require.True(t, d.Apply("Human/1", res))
		assert.False(t, res.Bot)
	})

	t.Run("no match leaves result untouched", func(t *testing.T) {
		res := useragent.NewResult()
		d := &useragent.Detector{RuleName: "X", RuleCategory: useragent.CategoryBrowser, LookFor: []string{"X"}, Bot: true}
		assert.False(t, d.Apply("nothing here", res))
		assert.False(t, res.Has(useragent.CategoryBrowser))
		assert.False(t, res.Bot)
	})
}
