package style

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// LerpColor linearly interpolates between two colors at position t ∈ [0,1].
func LerpColor(a, b color.Color, t float64) color.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()

	// RGBA() returns values in [0, 65535]. Convert to [0, 255].
	lerp := func(x, y uint32) uint8 {
		v := float64(x>>8)*(1-t) + float64(y>>8)*t
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}

	return color.NRGBA{
		R: lerp(ar, br),
		G: lerp(ag, bg),
		B: lerp(ab, bb),
		A: lerp(aa, ba),
	}
}

// nrgbaToHex converts a color.Color to a CSS hex string "#RRGGBB".
// Alpha is ignored for terminal compatibility.
func nrgbaToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}

// GradientText renders text with a left-to-right color gradient, coloring
// each rune individually.
func GradientText(text string, from, to color.Color, bold bool) string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return ""
	}
	base := lipgloss.NewStyle().Bold(bold)
	if n == 1 {
		return base.Foreground(lipgloss.Color(nrgbaToHex(from))).Render(text)
	}

	var sb strings.Builder
	for i, r := range runes {
		c := LerpColor(from, to, float64(i)/float64(n-1))
		sb.WriteString(base.Foreground(lipgloss.Color(nrgbaToHex(c))).Render(string(r)))
	}
	return sb.String()
}

// Title renders s in the theme gradient, bold.
func Title(s string) string {
	return GradientText(s, GradColorA, GradColorB, true)
}

// coverGlyphs shade cover art from light to dense.
var coverGlyphs = []string{"░", "▒", "▓", "█"}

// CoverArt draws a w×h placeholder cover derived from seed, so the same
// album always gets the same picture. Colors run diagonally between two
// hues picked from the seed and the theme gradient.
func CoverArt(seed string, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	hash := fnv.New32a()
	hash.Write([]byte(seed))
	sum := hash.Sum32()

	from := LerpColor(GradColorA, GradColorB, float64(sum&0xff)/255)
	to := LerpColor(GradColorB, Warning, float64((sum>>8)&0xff)/255)
	glyph := coverGlyphs[(sum>>16)%uint32(len(coverGlyphs))]

	lines := make([]string, h)
	span := float64(max(w+h-2, 1))
	for y := range lines {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			c := LerpColor(from, to, float64(x+y)/span)
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(nrgbaToHex(c))).Render(glyph))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
