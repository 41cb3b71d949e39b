// Package anim provides the gradient spinner shown while a list loads.
// Each spinner has its own ID so ticks never cross between spinners, and
// a stopped spinner lets its pending tick fall on the floor.
package anim

import (
	"math"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/style"
)

const (
	fps           = 12
	frameDuration = time.Second / fps
	// ellipsisFrames is how many frames elapse per ellipsis state.
	ellipsisFrames = 5
)

var (
	glyphs         = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	ellipsisStates = []string{"", ".", "..", "..."}
)

var ids atomic.Int64

// TickMsg advances the spinner with the matching ID.
type TickMsg struct {
	ID  int64
	gen int
}

// Model is a braille spinner with a label, e.g. "⠹ loading albums..".
type Model struct {
	id       int64
	gen      int
	label    string
	spinning bool
	frame    int
	frames   []string
}

// New creates a stopped spinner. Frames are colored with the current theme
// gradient.
func New(label string) Model {
	m := Model{id: ids.Add(1), label: label}
	m.Recolor()
	return m
}

// Recolor rebuilds the frames after a theme change.
func (m *Model) Recolor() {
	n := len(glyphs)
	m.frames = make([]string, n)
	for i, g := range glyphs {
		// A sine sweep bounces between the ends instead of wrapping abruptly.
		t := (math.Sin(math.Pi*float64(i)/float64(n-1)) + 1) / 2
		m.frames[i] = lipgloss.NewStyle().Foreground(style.LerpColor(style.GradColorA, style.GradColorB, t)).Render(g)
	}
}

// Start begins spinning and returns the first tick.
func (m *Model) Start() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	m.gen++
	return m.tick()
}

// Stop halts the spinner. Its pending tick is ignored.
func (m *Model) Stop() { m.spinning = false }

// Spinning reports whether the spinner runs.
func (m Model) Spinning() bool { return m.spinning }

// SetLabel changes the label text.
func (m *Model) SetLabel(s string) { m.label = s }

// Update advances the frame on this spinner's ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.gen != m.gen || !m.spinning {
		return m, nil
	}
	m.frame++
	return m, m.tick()
}

// View renders the current frame, or "" when stopped.
func (m Model) View() string {
	if !m.spinning {
		return ""
	}
	glyph := m.frames[m.frame%len(m.frames)]
	if m.label == "" {
		return glyph
	}
	dots := ellipsisStates[(m.frame/ellipsisFrames)%len(ellipsisStates)]
	return glyph + " " + style.Faint.Render(m.label+dots)
}

func (m Model) tick() tea.Cmd {
	id, gen := m.id, m.gen
	return tea.Tick(frameDuration, func(time.Time) tea.Msg {
		return TickMsg{ID: id, gen: gen}
	})
}
