// Package status provides the bottom status bar: the library source, the
// active list's position and windowing state, load progress and a key hint.
// It has no Update loop; the app drives it through setters.
package status

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/style"
	"github.com/miosa/tunes/ui/common"
	"github.com/miosa/tunes/ui/window"
)

// maxSourceWidth bounds the source name; library paths can be long.
const maxSourceWidth = 28

// List describes the active list.
type List struct {
	Name   string
	Cursor int
	Items  int
	State  window.State
	Range  window.Range
}

// Model is the status bar state.
type Model struct {
	source   string
	list     List
	progress float64 // 0..1 while album pages load
	loading  string  // spinner view
	hint     string
	width    int
}

// New returns an empty status bar.
func New() Model {
	return Model{progress: 1}
}

// SetSource names the library source, e.g. "demo" or a host.
func (m *Model) SetSource(name string) { m.source = name }

// SetList updates the active list summary.
func (m *Model) SetList(l List) { m.list = l }

// SetProgress sets album paging progress. Values >= 1 hide the bar.
func (m *Model) SetProgress(frac float64) { m.progress = frac }

// SetLoading sets the spinner view shown while something loads.
func (m *Model) SetLoading(view string) { m.loading = view }

// SetHint sets the right-aligned key hint.
func (m *Model) SetHint(h string) { m.hint = h }

// SetWidth updates the terminal width.
func (m *Model) SetWidth(w int) { m.width = w }

// View renders the status bar as one line exactly width columns wide.
func (m Model) View() string {
	sep := style.HelpSeparator.Render(" · ")

	parts := []string{style.StatusValue.Render(common.TruncatePath(m.source, maxSourceWidth))}
	if m.list.Name != "" {
		parts = append(parts,
			style.StatusKey.Render(m.list.Name)+" "+PositionPill(m.list.Cursor, m.list.Items),
			WindowPill(m.list.State, m.list.Range),
		)
	}
	if m.progress < 1 {
		parts = append(parts, style.ProgressBar(m.progress, 10))
	}
	if m.loading != "" {
		parts = append(parts, m.loading)
	}
	left := style.StatusBar.Render(strings.Join(parts, sep))

	if m.width <= 0 {
		return left
	}
	right := style.Hint.Render(m.hint)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if m.hint == "" || gap < 1 {
		return common.Fit(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}
