package command_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/handlekit/internal/app"
	"github.com/dmitrymomot/handlekit/internal/command"
	"github.com/dmitrymomot/handlekit/pkg/clipboard"
	"github.com/dmitrymomot/handlekit/pkg/config"
	"github.com/dmitrymomot/handlekit/pkg/handle"
	"github.com/dmitrymomot/handlekit/pkg/redis"
)

type output struct {
	Name        string              `json:"name" yaml:"name"`
	Normalized  string              `json:"normalized" yaml:"normalized"`
	Salt        int64               `json:"salt" yaml:"salt"`
	Suggestions []handle.Suggestion `json:"suggestions" yaml:"suggestions"`
}

func run(t *testing.T, board clipboard.Writer, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cliApp := command.New(
		command.WithOutput(&stdout, &stderr),
		command.WithClock(func() time.Time { return time.UnixMilli(1700000000000) }),
		command.WithClipboard(board),
	)
	err := cliApp.Run(append([]string{"handlekit"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestSuggest_Text(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, clipboard.NewMemory(), "suggest", "--salt", "42", "Lunar", "Labs")
	require.NoError(t, err)

	assert.Contains(t, out, "Lunar Labs (salt 42)")
	assert.Contains(t, out, "\nInstagram\n  @lunarlabspixels\n  @meetlunar_labspixels\n  @hellolunarlabspixels\n  tip: ")
	assert.Contains(t, out, "\nX (Twitter)\n  @itslunarlabslive\n")
	assert.Contains(t, out, "\nThreads\n")
}

func TestSuggest_ClockSalt(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, clipboard.NewMemory(), "suggest", "-f", "json", "Lunar Labs")
	require.NoError(t, err)

	var got output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(1700000000000), got.Salt)
	assert.Equal(t, handle.Generate("Lunar Labs", 1700000000000), got.Suggestions)
}

func TestSuggest_JSON(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, clipboard.NewMemory(), "suggest", "--salt", "42", "--format", "json", "-p", "x", "Lunar Labs")
	require.NoError(t, err)

	var got output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Lunar Labs", got.Name)
	assert.Equal(t, "Lunar Labs", got.Normalized)
	require.Len(t, got.Suggestions, 1)
	assert.Equal(t, []string{"@itslunarlabslive", "@thelunarlabslive", "@reallunar_labslive"}, got.Suggestions[0].Handles)
}

func TestSuggest_YAML(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, clipboard.NewMemory(), "suggest", "--salt=42", "-f", "yaml", "-p", "tiktok,youtube", "Lunar Labs")
	require.NoError(t, err)

	var got output
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got.Suggestions, 2)
	assert.Equal(t, "tiktok", got.Suggestions[0].Key)
	assert.Equal(t, []string{"@heylunarlabsbeats", "@lunarlabsbeats", "@watchlunar_labsbeats"}, got.Suggestions[0].Handles)
	assert.Equal(t, "youtube", got.Suggestions[1].Key)
}

func TestSuggest_NoUsableName(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, clipboard.NewMemory(), "suggest", "--salt", "1", "!!")
	require.NoError(t, err)
	assert.Contains(t, out, "No suggestions")

	out, _, err = run(t, clipboard.NewMemory(), "suggest", "--salt", "1", "-f", "json", "!!")
	require.NoError(t, err)
	assert.Contains(t, out, `"suggestions": []`)

	for _, blank := range []string{"   ", "", "\t"} {
		out, _, err = run(t, clipboard.NewMemory(), "suggest", "--salt", "1", blank)
		require.NoError(t, err, "blank name %q", blank)
		assert.Equal(t, "No suggestions: the name needs at least one letter or digit.\n", out)
	}
}

func TestSuggest_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing name", args: []string{"suggest"}, want: "a name is required"},
		{name: "unknown platform", args: []string{"suggest", "-p", "myspace", "Mira"}, want: `unknown platform "myspace"`},
		{name: "unknown copy platform", args: []string{"suggest", "--copy", "myspace", "Mira"}, want: `unknown platform "myspace"`},
		{name: "unknown format", args: []string{"suggest", "-f", "xml", "Mira"}, want: `unknown format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := run(t, clipboard.NewMemory(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSuggest_Copy(t *testing.T) {
	t.Parallel()

	t.Run("copies the bare first handle", func(t *testing.T) {
		t.Parallel()

		board := clipboard.NewMemory()
		out, _, err := run(t, board, "suggest", "--salt", "42", "--copy", "X", "Lunar Labs")
		require.NoError(t, err)

		assert.Equal(t, "itslunarlabslive", board.Text())
		assert.Contains(t, out, "copied itslunarlabslive to clipboard")
	})

	t.Run("structured output keeps status on stderr", func(t *testing.T) {
		t.Parallel()

		board := clipboard.NewMemory()
		out, errOut, err := run(t, board, "suggest", "--salt", "42", "-f", "json", "--copy", "tiktok", "Lunar Labs")
		require.NoError(t, err)

		var got output
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Contains(t, errOut, "copied heylunarlabsbeats to clipboard")
		assert.Equal(t, "heylunarlabsbeats", board.Text())
	})

	t.Run("clipboard failure does not fail the command", func(t *testing.T) {
		t.Parallel()

		broken := clipboard.WriterFunc(func(context.Context, string) error {
			return clipboard.ErrUnsupported
		})
		out, _, err := run(t, broken, "suggest", "--salt", "42", "--copy", "instagram", "Lunar Labs")
		require.NoError(t, err)
		assert.Contains(t, out, "not copied: clipboard unavailable")
	})

	t.Run("platform filtered out", func(t *testing.T) {
		t.Parallel()

		board := clipboard.NewMemory()
		out, _, err := run(t, board, "suggest", "--salt", "42", "-p", "x", "--copy", "tiktok", "Lunar Labs")
		require.NoError(t, err)
		assert.Contains(t, out, "not copied: no suggestion for tiktok")
		assert.Empty(t, board.Text())
	})
}

func TestPlatforms(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, clipboard.NewMemory(), "platforms")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "X (Twitter)")
	assert.Contains(t, out, "https://www.tiktok.com/@{handle}")

	out, _, err = run(t, clipboard.NewMemory(), "platforms", "-f", "json")
	require.NoError(t, err)

	var got []handle.Platform
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 5)
	assert.Equal(t, handle.PlatformKeys()[0], got[0].Key)
}

func TestServe_StopsOnCancel(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("LOG_LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stderr bytes.Buffer
	cliApp := command.New(command.WithOutput(&bytes.Buffer{}, &stderr))

	done := make(chan error, 1)
	go func() { done <- cliApp.RunContext(ctx, []string{"handlekit", "serve"}) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}

func TestServe_EnvFile(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("LOG_FORMAT", "text")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_FORMAT=xml\n"), 0o600))

	cliApp := command.New(command.WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	err := cliApp.Run([]string{"handlekit", "--env-file", path, "serve"})
	assert.ErrorIs(t, err, app.ErrInvalidConfig)
}

func TestServe_RedisUnavailable(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("HTTP_ADDR", "127.0.0.1:0")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REDIS_URL", "redis://127.0.0.1:1/0")
	t.Setenv("REDIS_RETRY_ATTEMPTS", "1")
	t.Setenv("REDIS_RETRY_INTERVAL", "10ms")
	t.Setenv("REDIS_CONNECT_TIMEOUT", "2s")

	cliApp := command.New(command.WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	err := cliApp.Run([]string{"handlekit", "serve"})
	assert.ErrorIs(t, err, redis.ErrNotReady)
}
