// Package gallery shows album art as a grid of tiles.
package gallery

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/miosa/tunes/library"
	"github.com/miosa/tunes/logging"
	"github.com/miosa/tunes/style"
	"github.com/miosa/tunes/ui/common"
	"github.com/miosa/tunes/ui/image"
	"github.com/miosa/tunes/ui/status"
	"github.com/miosa/tunes/ui/window"
)

const (
	artWidth  = 16
	artHeight = 6
)

func renderTile(img library.Image, _ int, ctx window.ItemContext) string {
	art := image.Placeholder(artWidth, artHeight)
	if img.URL != "" {
		art = image.Art(img, artWidth, artHeight)
	}
	body := strings.Join([]string{
		art,
		style.TileTitle.Render(common.Fit(img.Title, artWidth)),
		style.TileMeta.Render(common.Fit(image.Caption(img), artWidth)),
	}, "\n")
	if ctx.Selected {
		return style.TileSelected.Render(body)
	}
	return style.Tile.Render(body)
}

// Model is the gallery grid.
type Model struct {
	list    *window.Controller[library.Image]
	version int
	loaded  bool
	err     error
	width   int
}

// New returns an empty gallery tuned by cfg.
func New(cfg window.Config) *Model {
	m := &Model{}
	m.list = window.New(window.NewPane(0, 0), window.Options[library.Image]{
		Name:   "gallery",
		Layout: window.Grid,
		Gap:    1,
		Config: cfg,
		KeyOf:  library.Image.Key,
		Render: renderTile,
		Logger: logging.For("window"),
	})
	return m
}

// SetImages replaces the gallery. Each load is a new list.
func (m *Model) SetImages(images []library.Image, err error) tea.Cmd {
	m.loaded = true
	m.err = err
	if err != nil {
		return nil
	}
	m.version++
	return m.list.SetItems(images, "gallery:"+strconv.Itoa(m.version))
}

// Loaded reports whether images arrived at least once.
func (m *Model) Loaded() bool { return m.loaded }

// Selected returns the image under the cursor.
func (m *Model) Selected() (library.Image, bool) { return m.list.Selected() }

// SetSize sets the grid's outer size.
func (m *Model) SetSize(w, h int) tea.Cmd {
	m.width = w
	return m.list.SetSize(max(w-1, 0), max(h, 0))
}

// Update passes navigation to the grid.
func (m *Model) Update(msg tea.Msg) tea.Cmd { return m.list.Update(msg) }

// List exposes the grid's controller.
func (m *Model) List() *window.Controller[library.Image] { return m.list }

// Snapshot describes the grid's window.
func (m *Model) Snapshot() window.Snapshot { return m.list.Snapshot() }

// Status summarises the grid for the status bar.
func (m *Model) Status() status.List {
	s := m.list.Snapshot()
	return status.List{Name: "gallery", Cursor: s.Cursor, Items: s.Items, State: s.State, Range: s.Range}
}

// View renders the grid and its scrollbar.
func (m *Model) View() string {
	switch {
	case m.err != nil:
		return style.ErrorText.Render(" " + m.err.Error())
	case m.loaded && m.list.Len() == 0:
		return common.Empty("no album art", m.width)
	}
	snap := m.list.Snapshot()
	return common.WithScrollbar(m.list.View(), snap.Scroll.ViewportHeight, snap.TotalLines, snap.Scroll.ScrollTop)
}

// Close releases the grid's window.
func (m *Model) Close() { m.list.Close() }
