// Package common provides shared rendering helpers and formatting utilities
// used across the browser's UI components.
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/tunes/style"
)

// ---------------------------------------------------------------------------
// Text truncation / padding
// ---------------------------------------------------------------------------

// Truncate shortens s to width display columns, appending "…" if truncated.
// Styled input keeps its escape sequences.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// TruncatePath shortens a filesystem path to fit maxWidth columns.
// Strategy (first that fits): full path → ~/relative → …/last-two → …/basename.
func TruncatePath(path string, maxWidth int) string {
	if lipgloss.Width(path) <= maxWidth {
		return path
	}

	if home, err := os.UserHomeDir(); err == nil {
		if rel, err := filepath.Rel(home, path); err == nil && !strings.HasPrefix(rel, "..") {
			homePath := "~/" + rel
			if lipgloss.Width(homePath) <= maxWidth {
				return homePath
			}
		}
	}

	parts := strings.Split(filepath.Clean(path), string(filepath.Separator))
	if len(parts) >= 2 {
		lastTwo := "…/" + strings.Join(parts[len(parts)-2:], string(filepath.Separator))
		if lipgloss.Width(lastTwo) <= maxWidth {
			return lastTwo
		}
	}

	base := "…/" + filepath.Base(path)
	if lipgloss.Width(base) <= maxWidth {
		return base
	}
	return Truncate(base, maxWidth)
}

// PadRight pads s on the right with spaces until the rendered display width
// equals width. Returns s unchanged if it already meets or exceeds width.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Fit truncates or pads s to exactly width columns.
func Fit(s string, width int) string {
	return PadRight(Truncate(s, width), width)
}

// PadCenter centers s within width, padding both sides with spaces.
func PadCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	total := width - w
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// Empty renders a centered notice for a list with nothing to show, one line
// below the top.
func Empty(s string, width int) string {
	return "\n" + PadCenter(style.Hint.Render(s), width)
}

// Divider returns a horizontal rule of the given width rendered in the border color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return style.AlbumDivide.Render(strings.Repeat("─", width))
}

// ---------------------------------------------------------------------------
// Human-readable formatters
// ---------------------------------------------------------------------------

// HumanDuration formats a length in seconds for album totals.
//
//	185    → "3m 05s"
//	4_000  → "1h 06m"
func HumanDuration(seconds int) string {
	switch {
	case seconds <= 0:
		return "0m"
	case seconds < 3600:
		return fmt.Sprintf("%dm %02ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh %02dm", seconds/3600, (seconds%3600)/60)
	}
}

// HumanCount formats large item counts compactly.
//
//	1_500_000 → "1.5M"
//	3_400     → "3.4k"
//	250       → "250"
func HumanCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 10_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// ---------------------------------------------------------------------------
// Overlay chrome
// ---------------------------------------------------------------------------

// Modal renders title and body in the bordered overlay box, width columns wide.
func Modal(title, body string, width int) string {
	inner := max(width-4, 10)
	head := style.ModalTitle.Render(Truncate(title, inner))
	return style.ModalBorder.Width(width).Render(head + "\n\n" + body)
}
