// Package tracks is the track list of one album. The album header (title,
// credits and liner notes) scrolls with the list, above its first row.
package tracks

import (
	"cmp"
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

type item = filter.Match[library.Track]

const (
	numberWidth = 6
	lengthWidth = 6
	heartWidth  = 2
	heart       = "♥"
)

// Model is the track list.
type Model struct {
	list  *window.Controller[item]
	query filter.Input

	album   library.Album
	tracks  []library.Track
	focus   int // track number to reveal when tracks arrive
	loading bool
	err     error

	width, height int
}

// New returns an empty track list tuned by cfg.
func New(cfg window.Config) *Model {
	m := &Model{query: filter.NewInput("filter tracks")}
	m.list = window.New(window.NewPane(0, 0), window.Options[item]{
		Name:   "tracks",
		Layout: window.Flat,
		Config: cfg,
		KeyOf:  keyOf,
		Render: renderRow,
		Logger: logging.For("window"),
	})
	return m
}

// keyOf includes the liked flag so a like re-renders only that row.
func keyOf(it item) string {
	k := it.Item.Key()
	if k != "" && it.Item.Liked {
		k += "+"
	}
	return k
}

// Text is what the filter searches in a track.
func Text(t library.Track) string { return t.Title + " " + t.Artist }

func number(t library.Track) string {
	if t.Disc > 1 {
		return fmt.Sprintf("%d.%02d", t.Disc, t.No)
	}
	return fmt.Sprintf("%02d", t.No)
}

func renderRow(it item, _ int, ctx window.ItemContext) string {
	t := it.Item
	// Row padding takes one cell.
	w := max(ctx.Width-1, 0)
	artistWidth := min(max(w/4, 8), 28)
	titleWidth := max(w-numberWidth-artistWidth-lengthWidth-heartWidth-2, 1)
	titleLen := len([]rune(t.Title))

	title := filter.Highlight(common.Truncate(t.Title, titleWidth),
		filter.Within(it.Runes, 0, titleLen), style.FilterMatch, lipgloss.NewStyle())
	artist := filter.Highlight(common.Truncate(t.Artist, artistWidth-1),
		filter.Within(it.Runes, titleLen+1, len([]rune(t.Artist))), style.FilterMatch, style.RowArtist)

	like := strings.Repeat(" ", heartWidth)
	if t.Liked {
		like = style.Liked.Render(heart) + " "
	}

	line := style.RowNumber.Render(common.Fit(number(t), numberWidth)) +
		common.PadRight(title, titleWidth) + " " +
		common.PadRight(artist, artistWidth) +
		style.RowLength.Render(fmt.Sprintf("%*s", lengthWidth, t.Length())) +
		" " + like
	line = common.Truncate(line, w)
	if ctx.Selected {
		return style.RowSelected.Render(line)
	}
	return style.Row.Render(line)
}

// Open shows album a with no tracks yet. focus is a track number to
// select once the tracks arrive, or 0.
func (m *Model) Open(a library.Album, focus int) tea.Cmd {
	m.album = a
	m.tracks = nil
	m.focus = focus
	m.loading = true
	m.err = nil
	m.query.Clear()
	return tea.Batch(m.resize(), m.header(), m.apply())
}

// SetAlbum refreshes the details of the album on show, for when the list
// was opened from a link before the album itself was known.
func (m *Model) SetAlbum(a library.Album) tea.Cmd {
	if a.ID != m.album.ID {
		return nil
	}
	if a.TrackCount == 0 {
		a.TrackCount = m.album.TrackCount
	}
	m.album = a
	return m.header()
}

// Album returns the album on show.
func (m *Model) Album() library.Album { return m.album }

// Loading reports whether tracks are still on their way.
func (m *Model) Loading() bool { return m.loading }

// SetTracks fills the list with the tracks of albumID. Tracks for another
// album than the one on show are dropped.
func (m *Model) SetTracks(albumID string, tracks []library.Track, err error) tea.Cmd {
	if albumID != m.album.ID {
		return nil
	}
	m.loading = false
	m.err = err
	m.tracks = tracks
	if m.album.TrackCount == 0 {
		m.album.TrackCount = len(tracks)
	}
	cmds := []tea.Cmd{m.header(), m.apply()}
	if m.focus > 0 {
		if i := m.indexOf(m.focus); i >= 0 {
			cmds = append(cmds, m.list.ScrollToIndex(i))
		}
		m.focus = 0
	}
	return tea.Batch(cmds...)
}

// Focus selects track number no and scrolls it to the top.
func (m *Model) Focus(no int) tea.Cmd {
	if m.loading {
		m.focus = no
		return nil
	}
	i := m.indexOf(no)
	if i < 0 {
		return nil
	}
	return m.list.ScrollToIndex(i)
}

func (m *Model) indexOf(no int) int {
	for i, it := range m.list.Items() {
		if it.Item.No == no {
			return i
		}
	}
	return -1
}

// MarkLiked updates the liked flag of t in place. The list identity does
// not change, so the window and cursor stay where they are.
func (m *Model) MarkLiked(t library.Track, liked bool) tea.Cmd {
	if t.AlbumID != m.album.ID {
		return nil
	}
	i := library.IndexOf(m.tracks, t.No)
	if i < 0 {
		return nil
	}
	m.tracks[i].Liked = liked
	return m.apply()
}

func (m *Model) apply() tea.Cmd {
	matches := filter.Apply(m.tracks, m.query.Value(), Text)
	return m.list.SetItems(matches, "tracks:"+m.album.ID+":"+m.query.Value())
}

// header renders the album block that sits above the first row.
func (m *Model) header() tea.Cmd {
	return m.list.SetHeader(Header(m.album, m.tracks, max(m.width-1, 0)))
}

// Header renders the title, credits and notes of a for width cells.
func Header(a library.Album, tracks []library.Track, width int) string {
	if a.ID == "" || width <= 0 {
		return ""
	}
	var meta []string
	if a.Artist != "" {
		meta = append(meta, a.Artist)
	}
	if a.Year > 0 {
		meta = append(meta, strconv.Itoa(a.Year))
	}
	if a.Genre != "" {
		meta = append(meta, a.Genre)
	}
	meta = append(meta, fmt.Sprintf("%d tracks", max(a.TrackCount, len(tracks))))
	if secs := total(tracks); secs > 0 {
		meta = append(meta, common.HumanDuration(secs))
	}

	lines := []string{
		" " + style.AlbumTitle.Render(common.Truncate(cmp.Or(a.Title, a.ID), width-1)),
		" " + style.AlbumMeta.Render(common.Truncate(strings.Join(meta, " · "), width-1)),
	}
	if notes := common.Markdown(a.Notes, width); notes != "" {
		lines = append(lines, notes)
	}
	lines = append(lines, common.Divider(width))
	return strings.Join(lines, "\n")
}

func total(tracks []library.Track) int {
	n := 0
	for _, t := range tracks {
		n += max(t.Seconds, 0)
	}
	return n
}

// Selected returns the track under the cursor.
func (m *Model) Selected() (library.Track, bool) {
	it, ok := m.list.Selected()
	return it.Item, ok
}

// Filtering reports whether keys go to the filter input.
func (m *Model) Filtering() bool { return m.query.Focused() }

// StartFilter focuses the filter input.
func (m *Model) StartFilter() tea.Cmd {
	return tea.Batch(m.query.Focus(), m.resize())
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

// SetSize sets the list's outer size. The header is re-rendered for the new
// width.
func (m *Model) SetSize(w, h int) tea.Cmd {
	resized := w != m.width
	m.width, m.height = w, h
	cmd := m.resize()
	if resized {
		return tea.Batch(cmd, m.header())
	}
	return cmd
}

func (m *Model) resize() tea.Cmd {
	h := m.height
	if m.query.Active() {
		h--
	}
	m.query.SetWidth(m.width)
	return m.list.SetSize(max(m.width-1, 0), max(h, 0))
}

// Restyle re-renders the header and rows after a theme change.
func (m *Model) Restyle() tea.Cmd {
	return tea.Batch(m.header(), m.list.Remeasure())
}

var slash = key.NewBinding(key.WithKeys("/"))

// Update routes keys to the filter while it is focused and everything else
// to the list.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if kp, ok := msg.(tea.KeyPressMsg); ok {
		if m.query.Focused() {
			wasActive := m.query.Active()
			cmd, changed := m.query.Update(kp)
			cmds := []tea.Cmd{cmd}
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
		cmd, _ := m.query.Update(msg)
		return tea.Batch(cmd, m.list.Update(msg))
	}
	return m.list.Update(msg)
}

// List exposes the list's controller.
func (m *Model) List() *window.Controller[item] { return m.list }

// Snapshot describes the list's window.
func (m *Model) Snapshot() window.Snapshot { return m.list.Snapshot() }

// Status summarises the list for the status bar.
func (m *Model) Status() status.List {
	s := m.list.Snapshot()
	return status.List{Name: "tracks", Cursor: s.Cursor, Items: s.Items, State: s.State, Range: s.Range}
}

// View renders the filter line, the list and its scrollbar.
func (m *Model) View() string {
	snap := m.list.Snapshot()
	var parts []string
	if q := m.query.View(); q != "" {
		parts = append(parts, q)
	}
	body := common.WithScrollbar(m.list.View(), snap.Scroll.ViewportHeight, snap.TotalLines, snap.Scroll.ScrollTop)
	switch {
	case m.err != nil:
		body = style.ErrorText.Render(" " + m.err.Error())
	case snap.Items == 0 && m.query.Value() != "":
		body = common.Empty("no tracks match", m.width)
	}
	parts = append(parts, body)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Close releases the list's window.
func (m *Model) Close() { m.list.Close() }
