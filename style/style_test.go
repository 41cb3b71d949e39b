package style

import (
	"image/color"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

// Theme state is package-global, so these tests run sequentially.

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dark") })

	assert.False(t, SetTheme("nope"))
	assert.Equal(t, "dark", CurrentThemeName)

	assert.True(t, SetTheme("light"))
	assert.Equal(t, "light", CurrentThemeName)
	assert.False(t, IsDark())
	assert.Equal(t, lightTheme.Primary, Primary)
	assert.Equal(t, "catppuccin", NextTheme())

	SetTheme("tokyo-night")
	assert.Equal(t, "dark", NextTheme())
}

func TestLerpColor(t *testing.T) {
	a := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	b := color.NRGBA{R: 200, G: 100, B: 50, A: 255}

	assert.Equal(t, a, LerpColor(a, b, -1))
	assert.Equal(t, b, LerpColor(a, b, 2))
	assert.Equal(t, color.NRGBA{R: 100, G: 50, B: 25, A: 255}, LerpColor(a, b, 0.5))
}

func TestCoverArt(t *testing.T) {
	art := CoverArt("al0001", 6, 3)
	assert.Equal(t, 6, lipgloss.Width(art))
	assert.Equal(t, 3, lipgloss.Height(art))
	assert.Equal(t, art, CoverArt("al0001", 6, 3), "same seed, same art")
	assert.Empty(t, CoverArt("x", 0, 3))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, 10, lipgloss.Width(ProgressBar(0.35, 10)))
	assert.Equal(t, 4, lipgloss.Width(ProgressBar(7, 4)))
	assert.Empty(t, ProgressBar(0.5, 0))
}

func TestGradientText(t *testing.T) {
	assert.Empty(t, GradientText("", Primary, Secondary, false))
	assert.Equal(t, 5, lipgloss.Width(Title("tunes")))
}
