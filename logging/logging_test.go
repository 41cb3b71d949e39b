package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNew_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn).With("component", "window")
	log.Info("hidden")
	log.Warn("shown", "list", "albums")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "component=window")
	assert.Contains(t, out, "list=albums")
}

// Open swaps the process-wide default logger, so this test is not parallel.
func TestOpen(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := filepath.Join(t.TempDir(), "profile")
	closeLog, err := Open(dir, slog.LevelInfo)
	require.NoError(t, err)

	For("library").Info("scanned", "albums", 3)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(filepath.Join(dir, "tunes.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=library")
	assert.Contains(t, string(data), "albums=3")
}
