// Package liked lists liked albums as collapsible groups. An expanded
// group shows its tracks under the album row.
package liked

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
	"github.com/miosa/tunes/ui/status"
	"github.com/miosa/tunes/ui/window"
)

// Row is either an album group header or one of its tracks.
type Row struct {
	Album library.Album
	// Track is set on track rows.
	Track    library.Track
	IsTrack  bool
	Expanded bool
	Count    int // tracks in the group
}

// Key identifies the row. Headers carry their expanded state and tracks
// their liked state, so a change re-renders that row only.
func (r Row) Key() string {
	if r.IsTrack {
		k := r.Track.Key()
		if k == "" {
			return ""
		}
		if !r.Track.Liked {
			k += "-"
		}
		return "t:" + k
	}
	k := "a:" + r.Album.ID
	if r.Expanded {
		k += "+"
	}
	return k
}

const (
	caretOpen   = "▾"
	caretClosed = "▸"
	trackIndent = 4
)

func renderRow(r Row, _ int, ctx window.ItemContext) string {
	w := max(ctx.Width, 0)
	if r.IsTrack {
		return renderTrack(r.Track, w, ctx.Selected)
	}
	caret := caretClosed
	if r.Expanded {
		caret = caretOpen
	}
	count := fmt.Sprintf("%d ♥", r.Count)
	label := r.Album.Title
	if r.Album.Artist != "" {
		label += " · " + r.Album.Artist
	}
	labelWidth := max(w-4-lipgloss.Width(count), 1)
	line := style.GroupCaret.Render(caret) + " " +
		common.Fit(label, labelWidth) + " " +
		style.Liked.Render(count) + " "
	line = common.Truncate(line, w)
	if ctx.Selected {
		return style.GroupHeaderSelected.Render(common.PadRight(line, w))
	}
	return style.GroupHeader.Render(common.PadRight(line, w))
}

func renderTrack(t library.Track, w int, selected bool) string {
	like := " "
	if t.Liked {
		like = style.Liked.Render("♥")
	}
	titleWidth := max(w-trackIndent-4-6-2, 1)
	line := strings.Repeat(" ", trackIndent) +
		style.RowNumber.Render(fmt.Sprintf("%02d  ", t.No)) +
		common.Fit(t.Title, titleWidth) +
		style.RowLength.Render(fmt.Sprintf("%6s", t.Length())) +
		" " + like
	line = common.PadRight(common.Truncate(line, w), w)
	if selected {
		return lipgloss.NewStyle().Background(style.SelectionBgColor).Bold(true).Render(line)
	}
	return line
}

// Model is the liked list.
type Model struct {
	list *window.Controller[Row]

	groups   []library.LikedAlbum
	expanded map[string]bool
	version  int
	loaded   bool
	err      error

	width, height int
}

// New returns an empty liked list tuned by cfg.
func New(cfg window.Config) *Model {
	m := &Model{expanded: make(map[string]bool)}
	m.list = window.New(window.NewPane(0, 0), window.Options[Row]{
		Name:   "liked",
		Layout: window.Flat,
		Config: cfg,
		KeyOf:  Row.Key,
		Render: renderRow,
		Logger: logging.For("window"),
	})
	return m
}

// SetAlbums replaces the liked albums. Groups that stay in the list keep
// their expanded state.
func (m *Model) SetAlbums(groups []library.LikedAlbum, err error) tea.Cmd {
	m.loaded = true
	m.err = err
	if err != nil {
		return nil
	}
	m.groups = groups
	present := make(map[string]bool, len(groups))
	for _, g := range groups {
		present[g.Album.ID] = true
	}
	for id := range m.expanded {
		if !present[id] {
			delete(m.expanded, id)
		}
	}
	m.version++
	return m.apply()
}

// Loaded reports whether albums arrived at least once.
func (m *Model) Loaded() bool { return m.loaded }

// Rows flattens the groups into list rows.
func Rows(groups []library.LikedAlbum, expanded map[string]bool) []Row {
	var rows []Row
	for _, g := range groups {
		open := expanded[g.Album.ID]
		rows = append(rows, Row{Album: g.Album, Expanded: open, Count: len(g.Tracks)})
		if !open {
			continue
		}
		for _, t := range g.Tracks {
			rows = append(rows, Row{Album: g.Album, Track: t, IsTrack: true})
		}
	}
	return rows
}

func (m *Model) apply() tea.Cmd {
	return m.list.SetItems(Rows(m.groups, m.expanded), m.identity())
}

// identity changes whenever the set of expanded groups does.
func (m *Model) identity() string {
	return "liked:" + strconv.Itoa(m.version)
}

// Toggle expands or collapses the group under the cursor and keeps that
// group's header at the top of the view.
func (m *Model) Toggle() tea.Cmd {
	row, ok := m.list.Selected()
	if !ok {
		return nil
	}
	id := row.Album.ID
	m.expanded[id] = !m.expanded[id]
	if !m.expanded[id] {
		delete(m.expanded, id)
	}
	return m.regroup(id)
}

// SetAllExpanded expands or collapses every group. The group under the
// cursor stays in view.
func (m *Model) SetAllExpanded(open bool) tea.Cmd {
	var id string
	if row, ok := m.list.Selected(); ok {
		id = row.Album.ID
	}
	clear(m.expanded)
	if open {
		for _, g := range m.groups {
			m.expanded[g.Album.ID] = true
		}
	}
	return m.regroup(id)
}

// AllExpanded reports whether every group is open.
func (m *Model) AllExpanded() bool {
	return len(m.groups) > 0 && len(m.expanded) == len(m.groups)
}

func (m *Model) regroup(focus string) tea.Cmd {
	m.version++
	cmd := m.apply()
	if i := m.headerIndex(focus); i >= 0 {
		return tea.Batch(cmd, m.list.ScrollToIndex(i))
	}
	return cmd
}

func (m *Model) headerIndex(albumID string) int {
	if albumID == "" {
		return -1
	}
	for i, r := range m.list.Items() {
		if !r.IsTrack && r.Album.ID == albumID {
			return i
		}
	}
	return -1
}

// Selected returns the row under the cursor.
func (m *Model) Selected() (Row, bool) { return m.list.Selected() }

// SelectedTrack returns the track under the cursor, if the cursor is on a
// track row.
func (m *Model) SelectedTrack() (library.Track, bool) {
	r, ok := m.list.Selected()
	if !ok || !r.IsTrack {
		return library.Track{}, false
	}
	return r.Track, true
}

// MarkLiked updates the liked flag of t without regrouping. An unliked
// track keeps its row until the next reload.
func (m *Model) MarkLiked(t library.Track, liked bool) tea.Cmd {
	for gi := range m.groups {
		g := &m.groups[gi]
		if g.Album.ID != t.AlbumID {
			continue
		}
		if i := library.IndexOf(g.Tracks, t.No); i >= 0 {
			g.Tracks[i].Liked = liked
			return m.apply()
		}
	}
	return nil
}

// SetSize sets the list's outer size.
func (m *Model) SetSize(w, h int) tea.Cmd {
	m.width, m.height = w, h
	return m.list.SetSize(max(w-1, 0), max(h, 0))
}

var (
	toggleKey = key.NewBinding(key.WithKeys("enter", "space"))
	expandKey = key.NewBinding(key.WithKeys("e"))
)

// Update toggles groups and passes everything else to the list.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if kp, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(kp, toggleKey):
			return m.Toggle()
		case key.Matches(kp, expandKey):
			return m.SetAllExpanded(!m.AllExpanded())
		}
	}
	return m.list.Update(msg)
}

// List exposes the list's controller.
func (m *Model) List() *window.Controller[Row] { return m.list }

// Snapshot describes the list's window.
func (m *Model) Snapshot() window.Snapshot { return m.list.Snapshot() }

// Status summarises the list for the status bar.
func (m *Model) Status() status.List {
	s := m.list.Snapshot()
	return status.List{Name: "liked", Cursor: s.Cursor, Items: s.Items, State: s.State, Range: s.Range}
}

// View renders the list and its scrollbar.
func (m *Model) View() string {
	switch {
	case m.err != nil:
		return style.ErrorText.Render(" " + m.err.Error())
	case m.loaded && len(m.groups) == 0:
		return common.Empty("no liked tracks yet", m.width)
	}
	snap := m.list.Snapshot()
	return common.WithScrollbar(m.list.View(), snap.Scroll.ViewportHeight, snap.TotalLines, snap.Scroll.ScrollTop)
}

// Close releases the list's window.
func (m *Model) Close() { m.list.Close() }
