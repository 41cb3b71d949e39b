package window

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line " + strconv.Itoa(i)
	}
	return lines
}

func TestPane_ScrollListeners(t *testing.T) {
	t.Parallel()

	p := NewPane(20, 5)
	p.SetContent(numberedLines(50))

	calls := 0
	cancel := p.OnScroll(func() { calls++ })

	p.SetScrollTop(10)
	assert.Equal(t, 10, p.ScrollTop())
	assert.Equal(t, 1, calls)

	p.SetScrollTop(10)
	assert.Equal(t, 1, calls, "no event without movement")

	p.SetScrollTop(1000)
	assert.Equal(t, 45, p.ScrollTop(), "clamped to content")
	assert.Equal(t, 2, calls)

	cancel()
	p.SetScrollTop(0)
	assert.Equal(t, 2, calls, "unsubscribed")
	assert.Zero(t, p.scroll.len())
}

func TestPane_ShorterContentClampsOffset(t *testing.T) {
	t.Parallel()

	p := NewPane(20, 5)
	p.SetContent(numberedLines(50))
	p.SetScrollTop(40)

	calls := 0
	p.OnScroll(func() { calls++ })
	p.SetContent(numberedLines(10))

	assert.Equal(t, 5, p.ScrollTop())
	assert.Equal(t, 1, calls)
}

func TestPane_ResizeListeners(t *testing.T) {
	t.Parallel()

	p := NewPane(20, 5)
	calls := 0
	p.OnResize(func() { calls++ })

	p.SetSize(20, 5)
	assert.Zero(t, calls)

	p.SetSize(30, 5)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 30, p.ClientWidth())
	assert.Equal(t, 5, p.ClientHeight())
}

func TestPane_View(t *testing.T) {
	t.Parallel()

	p := NewPane(20, 3)
	p.SetContent(numberedLines(10))
	p.SetScrollTop(4)

	view := p.View()
	assert.Contains(t, view, "line 4")
	assert.Contains(t, view, "line 6")
	assert.NotContains(t, view, "line 7")
	assert.Equal(t, 10, p.TotalLines())
}
