package debug

import (
	"encoding/json"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/tunes/ui/window"
)

type fixed window.Snapshot

func (f fixed) Snapshot() window.Snapshot { return window.Snapshot(f) }

func TestRender(t *testing.T) {
	out, err := Render(window.Snapshot{
		Name:  "albums",
		State: window.StateWindowed,
		Items: 1200,
		Range: window.Range{Start: 40, End: 96},
	})
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, "albums", back["name"])
	assert.Equal(t, "windowed", back["state"])
	assert.EqualValues(t, 1200, back["items"])
}

func TestHighlightKeepsText(t *testing.T) {
	assert.Empty(t, Highlight(""))
	src := `{"name": "tracks"}`
	assert.Contains(t, ansi.Strip(Highlight(src)), `"tracks"`)
}

func TestView(t *testing.T) {
	var m Model
	assert.Empty(t, m.View(80, 40))

	m.Toggle()
	assert.True(t, m.Open())
	assert.Contains(t, ansi.Strip(m.View(80, 40)), "no list")

	m.SetSource(fixed{Name: "gallery", Items: 3})
	view := ansi.Strip(m.View(80, 40))
	assert.Contains(t, view, "window · gallery")
	assert.Contains(t, view, `"items"`)

	m.Toggle()
	assert.Empty(t, m.View(80, 40))
}
