// Package logo renders the tunes banner shown while the library connects.
package logo

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/style"
)

// FullLogo is the 6-line block logo.
const FullLogo = `████████╗██╗   ██╗███╗   ██╗███████╗███████╗
╚══██╔══╝██║   ██║████╗  ██║██╔════╝██╔════╝
   ██║   ██║   ██║██╔██╗ ██║█████╗  ███████╗
   ██║   ██║   ██║██║╚██╗██║██╔══╝  ╚════██║
   ██║   ╚██████╔╝██║ ╚████║███████╗███████║
   ╚═╝    ╚═════╝ ╚═╝  ╚═══╝╚══════╝╚══════╝`

// CompactLogo is used when the terminal is too narrow for the full logo.
const CompactLogo = "♪ tunes"

// fullLogoMinWidth is the minimum terminal width to use the full logo.
const fullLogoMinWidth = 50

// Render returns the logo sized for width in the theme gradient. Each line
// of the full logo gets the same sweep so the columns line up.
func Render(width int) string {
	if width < fullLogoMinWidth {
		return style.Title(CompactLogo)
	}
	lines := strings.Split(FullLogo, "\n")
	for i, line := range lines {
		lines[i] = style.GradientText(line, style.GradColorA, style.GradColorB, false)
	}
	return strings.Join(lines, "\n")
}

// RenderVersion returns "v{version}" in the muted theme color.
func RenderVersion(version string) string {
	v := version
	if v == "" {
		v = "dev"
	}
	if v != "dev" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return lipgloss.NewStyle().Foreground(style.Muted).Render(v)
}

// Banner stacks the logo, the version and status lines, centered.
func Banner(width int, version string, status ...string) string {
	parts := append([]string{Render(width), RenderVersion(version), ""}, status...)
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}
