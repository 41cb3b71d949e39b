// Package debug renders the diagnostics overlay: the state of the active
// list's window as highlighted JSON.
package debug

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/miosa/tunes/ui/common"
	"github.com/miosa/tunes/ui/window"
)

// Source is anything that can describe its window.
type Source interface {
	Snapshot() window.Snapshot
}

// Model is the overlay. It holds no list state of its own; every View
// takes a fresh snapshot.
type Model struct {
	open   bool
	source Source
}

// Toggle opens or closes the overlay.
func (m *Model) Toggle() { m.open = !m.open }

// Open reports whether the overlay is shown.
func (m Model) Open() bool { return m.open }

// SetSource points the overlay at the list that has focus.
func (m *Model) SetSource(s Source) { m.source = s }

// Render returns the snapshot as indented JSON.
func Render(s window.Snapshot) (string, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(b), nil
}

// View draws the overlay as a modal no wider than width and no taller
// than height.
func (m Model) View(width, height int) string {
	if !m.open {
		return ""
	}
	title := "window"
	var body string
	if m.source == nil {
		body = "no list"
	} else {
		snap := m.source.Snapshot()
		title = "window · " + snap.Name
		src, err := Render(snap)
		if err != nil {
			body = err.Error()
		} else {
			body = Highlight(src)
		}
	}
	lines := strings.Split(body, "\n")
	// Modal border, padding and title take four lines.
	if limit := height - 4; limit > 0 && len(lines) > limit {
		lines = append(lines[:limit-1], "…")
	}
	return common.Modal(title, strings.Join(lines, "\n"), min(width, 56))
}
