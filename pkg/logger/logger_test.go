package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	prev := defaultLogger
	t.Cleanup(func() {
		defaultLogger = prev
		if prev != nil {
			slog.SetDefault(prev)
		}
	})

	require.NoError(t, Init(Config{Level: "info", Format: "json", Output: "file", FilePath: path, MaxSize: 1}))

	InfoContext(ContextWithRequestID(context.Background(), "req-7"), "Task created", "task_id", "t-1")
	Debug("hidden at info level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"Task created"`)
	assert.Contains(t, out, `"request_id":"req-7"`)
	assert.False(t, strings.Contains(out, "hidden at info level"))
}
