// Package toast shows short auto-dismissing notices in the top-right corner,
// such as "link copied" or a failed load.
package toast

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/style"
)

// Level classifies toast severity.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

const (
	maxToasts = 3
	ttl       = 4 * time.Second
)

// ExpireMsg prunes expired toasts.
type ExpireMsg struct{}

type toast struct {
	message string
	level   Level
	expiry  time.Time
}

// Model manages a queue of auto-dismissing toast notifications.
type Model struct {
	queue []toast
	now   func() time.Time
}

// New creates an empty Model.
func New() Model {
	return Model{now: time.Now}
}

// Add enqueues a toast and returns the command that expires it. Oldest
// toasts are dropped when the queue exceeds maxToasts.
func (m *Model) Add(message string, level Level) tea.Cmd {
	m.queue = append(m.queue, toast{
		message: message,
		level:   level,
		expiry:  m.now().Add(ttl),
	})
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg { return ExpireMsg{} })
}

// Expire prunes expired toasts.
func (m *Model) Expire() {
	now := m.now()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
}

// Len reports how many toasts are visible.
func (m Model) Len() int { return len(m.queue) }

// View renders visible toasts as right-aligned colored lines.
func (m Model) View(width int) string {
	if len(m.queue) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.queue))
	for _, t := range m.queue {
		icon, col := iconColor(t.level)
		rendered := lipgloss.NewStyle().Foreground(col).Render(fmt.Sprintf(" %s %s ", icon, t.message))
		pad := max(width-lipgloss.Width(rendered), 0)
		lines = append(lines, strings.Repeat(" ", pad)+rendered)
	}
	return strings.Join(lines, "\n")
}

func iconColor(level Level) (string, color.Color) {
	switch level {
	case Warning:
		return "⚠", style.Warning
	case Error:
		return "✘", style.Error
	default:
		return "✓", style.Success
	}
}
