package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/uakit/pkg/logger"
	"github.com/dmitrymomot/uakit/pkg/source"
	"github.com/dmitrymomot/uakit/pkg/useragent"
)

const (
	curlUA      = "curl/8.4.0"
	googlebotUA = "Googlebot/2.1 (+http://www.google.com/bot.html)"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd(t *testing.T) {
	t.Run("reads stdin by default", func(t *testing.T) {
		out, _, err := execute(t, curlUA+"\n", "--quiet")
		require.NoError(t, err)
		assert.Equal(t, `"curl/8.4.0"|"Unknown OS"|"curl 8.4.0"|""`+"\n", out)
	})

	t.Run("skips short and blank lines", func(t *testing.T) {
		in := strings.Join([]string{"", "  abc  ", "12345", curlUA, "   "}, "\n")
		out, stderr, err := execute(t, in, "-")
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out, "\n"))
		assert.Contains(t, stderr, "5 read, 1 classified, 4 skipped")
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		out, _, err := execute(t, "\t "+curlUA+" \r\n", "-q")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, `"curl/8.4.0"|`))
	})

	t.Run("reads a local file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "agents.txt")
		require.NoError(t, os.WriteFile(path, []byte(curlUA+"\n"+googlebotUA+"\n"), 0o600))

		out, _, err := execute(t, "", "-q", path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, `"Googlebot/2.1 (+http://www.google.com/bot.html)"|"Unknown OS"|"Googlebot 2.1"|""`, lines[1])
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "", "-q", filepath.Join(t.TempDir(), "nope.txt"))
		require.ErrorIs(t, err, source.ErrNotFound)
	})

	t.Run("json output", func(t *testing.T) {
		out, _, err := execute(t, googlebotUA+"\n", "-q", "--json")
		require.NoError(t, err)

		var doc struct {
			Source    string            `json:"source"`
			Line      int               `json:"line"`
			UserAgent string            `json:"user_agent"`
			Result    map[string]any    `json:"result"`
			Summary   useragent.Summary `json:"summary"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, source.Stdin, doc.Source)
		assert.Equal(t, 1, doc.Line)
		assert.Equal(t, googlebotUA, doc.UserAgent)
		assert.Equal(t, true, doc.Result["bot"])
		assert.True(t, doc.Summary.Bot)
		assert.Equal(t, "Googlebot", doc.Summary.AgentName)
	})

	t.Run("fill-none adds empty slots in json", func(t *testing.T) {
		out, _, err := execute(t, "something without any token\n", "-q", "--json", "--fill-none")
		require.NoError(t, err)

		var doc struct {
			Result map[string]any `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Contains(t, doc.Result, "os")
		assert.Contains(t, doc.Result, "browser")
	})

	t.Run("too many args", func(t *testing.T) {
		_, _, err := execute(t, "", "a", "b")
		require.Error(t, err)
	})
}

func TestProcess(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var out bytes.Buffer

	rep, err := process(context.Background(), strings.NewReader(curlUA+"\nshort\n"), &out, processConfig{
		location:   "test",
		json:       true,
		classifier: useragent.New(nil),
		log:        logger.Nop(),
		now:        func() time.Time { return fixed },
	})
	require.NoError(t, err)
	assert.Equal(t, report{read: 2, skipped: 1, written: 1}, rep)

	var doc struct {
		Timestamp time.Time `json:"@timestamp"`
		Line      int       `json:"line"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, fixed, doc.Timestamp)
	assert.Equal(t, 1, doc.Line)
}

func TestProcessCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := process(ctx, strings.NewReader(curlUA+"\n"), &bytes.Buffer{}, processConfig{
		classifier: useragent.New(nil),
		log:        logger.Nop(),
	})
	require.ErrorIs(t, err, context.Canceled)
}
