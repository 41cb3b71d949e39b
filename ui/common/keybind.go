package common

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/style"
)

// KeyHelp renders a formatted key-binding help line for the status bar or
// contextual help overlay. Each binding is rendered as:
//
//	[key] description
//
// Bindings whose Enabled() is false are omitted.
func KeyHelp(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		keyStr := style.HelpKey.Render("[" + b.Help().Key + "]")
		helpStr := style.HelpDesc.Render(" " + b.Help().Desc)
		parts = append(parts, keyStr+helpStr)
	}
	return strings.Join(parts, style.HelpSeparator.Render("  ·  "))
}

// HelpColumn renders bindings one per line with aligned descriptions, for
// the help overlay.
func HelpColumn(bindings ...key.Binding) string {
	width := 0
	for _, b := range bindings {
		width = max(width, lipgloss.Width(b.Help().Key))
	}
	var lines []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		lines = append(lines, style.HelpKey.Render(PadRight(b.Help().Key, width))+"  "+style.HelpDesc.Render(b.Help().Desc))
	}
	return strings.Join(lines, "\n")
}
