// Package logging routes slog output to a file in the profile directory.
// The terminal belongs to the UI, so nothing is ever written to stdout.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const filename = "tunes.log"

// ParseLevel maps a settings value to a slog level. Unknown values are info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open appends to <profileDir>/tunes.log and installs it as the default
// logger. The returned func closes the file.
func Open(profileDir string, level slog.Level) (func() error, error) {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(profileDir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	slog.SetDefault(New(f, level))
	return f.Close, nil
}

// Discard installs a logger that drops everything.
func Discard() {
	slog.SetDefault(New(io.Discard, slog.LevelError))
}

// For returns the default logger tagged with a component name.
func For(component string) *slog.Logger {
	return slog.Default().With("component", component)
}
