// Package albums is the browse grid: one tile per album, filled a page at a
// time as the source delivers them, and narrowed by a typed filter.
package albums

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/library"
	"github.com/miosa/tunes/logging"
	"github.com/miosa/tunes/style"
	"github.com/miosa/tunes/ui/common"
	"github.com/miosa/tunes/ui/filter"
	"github.com/miosa/tunes/ui/status"
	"github.com/miosa/tunes/ui/window"
)

const (
	// TileInner is the content width of a tile. Padding and border add four
	// cells.
	TileInner   = 20
	coverHeight = 4
	gap         = 1
)

type item = filter.Match[library.Album]

// Model is the album grid.
type Model struct {
	list  *window.Controller[item]
	pane  *window.Pane
	query filter.Input

	all   []library.Album
	gen   int
	total int
	next  bool

	width, height int
}

// New returns an empty grid tuned by cfg.
func New(cfg window.Config) *Model {
	pane := window.NewPane(0, 0)
	m := &Model{pane: pane, query: filter.NewInput("filter albums")}
	m.list = window.New(pane, window.Options[item]{
		Name:   "albums",
		Layout: window.Grid,
		Gap:    gap,
		Config: cfg,
		KeyOf:  func(it item) string { return it.Item.Key() },
		Render: renderTile,
		Logger: logging.For("window"),
	})
	return m
}

// Text is what the filter searches in an album.
func Text(a library.Album) string { return a.Title + " " + a.Artist }

func renderTile(it item, _ int, ctx window.ItemContext) string {
	a := it.Item
	titleLen := len([]rune(a.Title))

	title := filter.Highlight(common.Truncate(a.Title, TileInner),
		filter.Within(it.Runes, 0, titleLen), style.FilterMatch, style.TileTitle)
	artist := filter.Highlight(common.Truncate(a.Artist, TileInner),
		filter.Within(it.Runes, titleLen+1, len([]rune(a.Artist))), style.FilterMatch, style.TileArtist)

	var meta []string
	if a.Year > 0 {
		meta = append(meta, strconv.Itoa(a.Year))
	}
	meta = append(meta, fmt.Sprintf("%d trk", a.TrackCount))

	body := strings.Join([]string{
		style.CoverArt(a.ID, TileInner, coverHeight),
		common.PadRight(title, TileInner),
		common.PadRight(artist, TileInner),
		style.TileMeta.Render(common.Fit(strings.Join(meta, " · "), TileInner)),
	}, "\n")
	if ctx.Selected {
		return style.TileSelected.Render(body)
	}
	return style.Tile.Render(body)
}

// Reset drops every album and starts a new load generation. Pages from
// older generations are ignored.
func (m *Model) Reset() tea.Cmd {
	m.gen++
	m.all = nil
	m.total = 0
	m.next = false
	return m.apply()
}

// Generation identifies the current load.
func (m *Model) Generation() int { return m.gen }

// AddPage appends a page of the current generation. more reports whether
// another page should be requested.
func (m *Model) AddPage(gen int, p library.Page[library.Album]) (more bool, cmd tea.Cmd) {
	if gen != m.gen {
		return false, nil
	}
	m.all = append(m.all, p.Items...)
	m.total = max(p.Total, len(m.all))
	m.next = p.Next
	return p.Next, m.apply()
}

// Loaded and Total report paging progress.
func (m *Model) Loaded() int { return len(m.all) }
func (m *Model) Total() int  { return m.total }

// Progress is the loaded fraction of the catalogue.
func (m *Model) Progress() float64 {
	if !m.next || m.total == 0 {
		return 1
	}
	return float64(len(m.all)) / float64(m.total)
}

// apply re-filters the loaded albums. A page arriving keeps the identity,
// so the grid keeps its scroll position; a new query or generation does not.
func (m *Model) apply() tea.Cmd {
	matches := filter.Apply(m.all, m.query.Value(), Text)
	return m.list.SetItems(matches, m.identity())
}

func (m *Model) identity() string {
	return "albums:" + strconv.Itoa(m.gen) + ":" + m.query.Value()
}

// Album returns a loaded album by ID.
func (m *Model) Album(id string) (library.Album, bool) {
	for _, a := range m.all {
		if a.ID == id {
			return a, true
		}
	}
	return library.Album{}, false
}

// Selected returns the album under the cursor.
func (m *Model) Selected() (library.Album, bool) {
	it, ok := m.list.Selected()
	return it.Item, ok
}

// Filtering reports whether keys go to the filter input.
func (m *Model) Filtering() bool { return m.query.Focused() }

// StartFilter focuses the filter input.
func (m *Model) StartFilter() tea.Cmd {
	cmd := m.query.Focus()
	return tea.Batch(cmd, m.resize())
}

// ClearFilter drops the query, if any.
func (m *Model) ClearFilter() tea.Cmd {
	if !m.query.Active() {
		return nil
	}
	m.query.Clear()
	return tea.Batch(m.resize(), m.apply())
}

// Query returns the filter text.
func (m *Model) Query() string { return m.query.Value() }

// SetSize sets the grid's outer size.
func (m *Model) SetSize(w, h int) tea.Cmd {
	m.width, m.height = w, h
	return m.resize()
}

func (m *Model) resize() tea.Cmd {
	h := m.height
	if m.query.Active() {
		h--
	}
	m.query.SetWidth(m.width)
	// One column is kept for the scrollbar.
	return m.list.SetSize(max(m.width-1, 0), max(h, 0))
}

var slash = key.NewBinding(key.WithKeys("/"))

// Update routes keys to the filter while it is focused and everything else
// to the grid.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if kp, ok := msg.(tea.KeyPressMsg); ok {
		if m.query.Focused() {
			wasActive := m.query.Active()
			cmd, changed := m.query.Update(kp)
			var cmds []tea.Cmd
			cmds = append(cmds, cmd)
			if m.query.Active() != wasActive {
				cmds = append(cmds, m.resize())
			}
			if changed {
				cmds = append(cmds, m.apply())
			}
			return tea.Batch(cmds...)
		}
		if key.Matches(kp, slash) {
			return m.StartFilter()
		}
	}
	if m.query.Focused() {
		// Cursor blinks and the like.
		cmd, _ := m.query.Update(msg)
		return tea.Batch(cmd, m.list.Update(msg))
	}
	return m.list.Update(msg)
}

// List exposes the grid's controller.
func (m *Model) List() *window.Controller[item] { return m.list }

// Snapshot describes the grid's window.
func (m *Model) Snapshot() window.Snapshot { return m.list.Snapshot() }

// Status summarises the grid for the status bar.
func (m *Model) Status() status.List {
	s := m.list.Snapshot()
	return status.List{Name: "albums", Cursor: s.Cursor, Items: s.Items, State: s.State, Range: s.Range}
}

// View renders the filter line, the grid and its scrollbar.
func (m *Model) View() string {
	snap := m.list.Snapshot()
	var parts []string
	if q := m.query.View(); q != "" {
		parts = append(parts, q)
	}
	switch {
	case snap.Items == 0 && m.query.Value() != "":
		parts = append(parts, common.Empty("no albums match", m.width))
	default:
		parts = append(parts, common.WithScrollbar(m.list.View(), snap.Scroll.ViewportHeight, snap.TotalLines, snap.Scroll.ScrollTop))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Close releases the grid's window.
func (m *Model) Close() { m.list.Close() }
