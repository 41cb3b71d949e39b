// Package header renders the top bar: the app title and the tab strip.
package header

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/style"
	"github.com/miosa/tunes/ui/common"
)

// Model holds the state for the header.
type Model struct {
	title   string
	version string
	tabs    []string
	active  int
	crumb   string
	width   int
}

// New returns a header with the given tab labels.
func New(version string, tabs ...string) Model {
	return Model{title: "♪ tunes", version: version, tabs: tabs}
}

// SetActive selects the highlighted tab.
func (m *Model) SetActive(i int) {
	if i >= 0 && i < len(m.tabs) {
		m.active = i
	}
}

// Active returns the highlighted tab.
func (m Model) Active() int { return m.active }

// SetCrumb shows a location after the tabs, e.g. the open album.
func (m *Model) SetCrumb(s string) { m.crumb = s }

// SetWidth updates the terminal width used for the separator.
func (m *Model) SetWidth(w int) { m.width = w }

// TabAt returns the tab under column x of the header line, or -1.
func (m Model) TabAt(x int) int {
	col := lipgloss.Width(m.titleView()) + 1
	for i := range m.tabs {
		w := lipgloss.Width(m.tabView(i))
		if x >= col && x < col+w {
			return i
		}
		col += w + lipgloss.Width(m.sep())
	}
	return -1
}

func (m Model) titleView() string { return style.Title(m.title) }

func (m Model) sep() string { return style.TabSeparator.Render("│") }

func (m Model) tabView(i int) string {
	if i == m.active {
		return style.TabActive.Render(m.tabs[i])
	}
	return style.TabInactive.Render(m.tabs[i])
}

// View returns the header line plus a thin separator line.
func (m Model) View() string {
	tabs := make([]string, len(m.tabs))
	for i := range m.tabs {
		tabs[i] = m.tabView(i)
	}
	line := m.titleView() + " " + strings.Join(tabs, m.sep())
	if m.crumb != "" {
		line += style.Faint.Render(" › ") + style.Bold.Render(m.crumb)
	}
	if m.width > 0 {
		ver := style.Faint.Render(m.version)
		gap := m.width - lipgloss.Width(line) - lipgloss.Width(ver)
		if gap >= 1 {
			line += strings.Repeat(" ", gap) + ver
		}
		line = common.Truncate(line, m.width)
	}
	return line + "\n" + common.Divider(m.width)
}

// Height is the number of lines View returns.
func (m Model) Height() int { return 2 }
