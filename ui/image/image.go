// Package image draws album art placeholders for gallery and album tiles.
// Inline image protocols (Kitty, iTerm2, Sixel) emit escape sequences whose
// height the terminal decides, which would break row measurement, so art is
// drawn as shaded text instead.
package image

import (
	"fmt"
	"path"
	"strings"

	"github.com/miosa/tunes/library"
	"github.com/miosa/tunes/style"
)

// Art returns a w×h block for img. The block depends only on the image URL.
func Art(img library.Image, w, h int) string {
	return style.CoverArt(img.URL, w, h)
}

// Caption describes img in one line, e.g. "600×600 jpg" or "embedded".
func Caption(img library.Image) string {
	var parts []string
	if img.Width > 0 && img.Height > 0 {
		parts = append(parts, fmt.Sprintf("%d×%d", img.Width, img.Height))
	}
	if strings.HasPrefix(img.URL, "embedded://") {
		parts = append(parts, "embedded")
	} else if ext := strings.TrimPrefix(path.Ext(img.URL), "."); ext != "" && len(ext) <= 4 {
		parts = append(parts, strings.ToLower(ext))
	}
	if len(parts) == 0 {
		return "cover"
	}
	return strings.Join(parts, " ")
}

// Placeholder returns a styled text stand-in used when an image has no URL.
func Placeholder(w, h int) string {
	line := style.Faint.Render(strings.Repeat("·", max(w, 0)))
	lines := make([]string, max(h, 0))
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
