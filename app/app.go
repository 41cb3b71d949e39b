package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/tunes/client"
	"github.com/miosa/tunes/config"
	"github.com/miosa/tunes/library"
	"github.com/miosa/tunes/logging"
	"github.com/miosa/tunes/msg"
	"github.com/miosa/tunes/style"
	"github.com/miosa/tunes/ui/albums"
	"github.com/miosa/tunes/ui/anim"
	"github.com/miosa/tunes/ui/clipboard"
	"github.com/miosa/tunes/ui/common"
	"github.com/miosa/tunes/ui/debug"
	"github.com/miosa/tunes/ui/gallery"
	"github.com/miosa/tunes/ui/header"
	"github.com/miosa/tunes/ui/liked"
	"github.com/miosa/tunes/ui/logo"
	"github.com/miosa/tunes/ui/status"
	"github.com/miosa/tunes/ui/toast"
	"github.com/miosa/tunes/ui/tracks"
	"github.com/miosa/tunes/ui/window"
)

const (
	loadTimeout = 30 * time.Second
	retryDelay  = 5 * time.Second
)

// -- Internal message types ---------------------------------------------------

type retryHealth struct{}

// likeResult carries the outcome of a like toggle.
type likeResult struct {
	track library.Track
	liked bool
	err   error
}

// healthChecker is implemented by sources that live behind a server.
type healthChecker interface {
	Health(ctx context.Context) (*client.HealthResponse, error)
}

// Copier places text on the clipboard.
type Copier interface {
	Copy(text string) (clipboard.Method, error)
}

// Options configures the root model.
type Options struct {
	Config     config.Config
	ProfileDir string // settings are saved here; empty disables saving
	Version    string
	// OpenLink is a share link to open once the library is reachable.
	OpenLink string
	Copier   Copier
}

// -- Model --------------------------------------------------------------------

// Model is the root Bubble Tea model. It owns the four lists and all wiring
// between the library source and the UI.
type Model struct {
	header  header.Model
	status  status.Model
	toasts  toast.Model
	spinner anim.Model
	debug   debug.Model

	albums  *albums.Model
	tracks  *tracks.Model
	liked   *liked.Model
	gallery *gallery.Model

	state    State
	screen   Screen
	back     Screen // where Esc from the track list returns
	showHelp bool
	layout   Layout
	keys     KeyMap

	source   library.Source
	copier   Copier
	ctx      context.Context
	cancel   context.CancelFunc
	log      *slog.Logger
	config   config.Config
	profile  string
	openLink string
	version  string
	loading  int // loads in flight
	lastErr  error

	width  int
	height int
}

// New constructs the root Model for src.
func New(src library.Source, opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())
	lists := opts.Config.Lists
	copier := opts.Copier
	if copier == nil {
		copier = clipboard.New()
	}

	st := status.New()
	st.SetSource(src.Name())

	m := Model{
		header:   header.New(opts.Version, tabs...),
		status:   st,
		toasts:   toast.New(),
		spinner:  anim.New("loading"),
		albums:   albums.New(lists.Albums.WindowConfig()),
		tracks:   tracks.New(lists.Tracks.WindowConfig()),
		liked:    liked.New(lists.Liked.WindowConfig()),
		gallery:  gallery.New(lists.Gallery.WindowConfig()),
		state:    StateConnecting,
		keys:     DefaultKeyMap(),
		source:   src,
		copier:   copier,
		ctx:      ctx,
		cancel:   cancel,
		log:      logging.For("app"),
		config:   opts.Config,
		profile:  opts.ProfileDir,
		openLink: strings.TrimSpace(opts.OpenLink),
		version:  opts.Version,
		width:    80,
		height:   24,
	}
	m.layout = ComputeLayout(m.width, m.height)
	m.updateStatus()
	return m
}

// -- Init ---------------------------------------------------------------------

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkHealth(), func() tea.Msg { return tea.RequestWindowSize() })
}

// -- Update -------------------------------------------------------------------

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := rawMsg.(type) {

	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		cmds = append(cmds, m.resize())

	case window.FrameMsg:
		// Frames carry their list's ID; the others ignore them.
		cmds = append(cmds,
			m.albums.List().Update(v),
			m.tracks.List().Update(v),
			m.liked.List().Update(v),
			m.gallery.List().Update(v),
		)

	case anim.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		cmds = append(cmds, cmd)

	case toast.ExpireMsg:
		m.toasts.Expire()

	case retryHealth:
		cmds = append(cmds, m.checkHealth())

	case msg.HealthResult:
		var cmd tea.Cmd
		m, cmd = m.handleHealth(v)
		cmds = append(cmds, cmd)

	case msg.AlbumsPageLoaded:
		var cmd tea.Cmd
		m, cmd = m.handleAlbumsPage(v)
		cmds = append(cmds, cmd)

	case msg.TracksLoaded:
		m.loading--
		if v.Err != nil {
			m.log.Warn("load tracks", "album", v.Album.ID, "err", v.Err)
			cmds = append(cmds, m.toasts.Add("tracks: "+v.Err.Error(), toast.Error))
		}
		cmds = append(cmds, m.tracks.SetTracks(v.Album.ID, v.Tracks, v.Err))

	case msg.LikedLoaded:
		m.loading--
		if v.Err != nil {
			m.log.Warn("load liked", "err", v.Err)
		}
		cmds = append(cmds, m.liked.SetAlbums(v.Albums, v.Err))

	case msg.GalleryLoaded:
		m.loading--
		if v.Err != nil {
			m.log.Warn("load gallery", "err", v.Err)
		}
		cmds = append(cmds, m.gallery.SetImages(v.Images, v.Err))

	case msg.LinkCopied:
		if v.Err != nil {
			m.log.Warn("copy link", "err", v.Err)
			cmds = append(cmds, m.toasts.Add("copy failed: "+v.Err.Error(), toast.Error))
		} else {
			cmds = append(cmds, m.toasts.Add("copied "+v.Link, toast.Info))
		}

	case msg.OpenLink:
		var cmd tea.Cmd
		m, cmd = m.handleOpenLink(v.Link)
		cmds = append(cmds, cmd)

	case likeResult:
		var cmd tea.Cmd
		m, cmd = m.handleLike(v)
		cmds = append(cmds, cmd)

	case tea.MouseClickMsg:
		if v.Button == tea.MouseLeft && v.Y == 0 && m.state == StateReady {
			if i := m.header.TabAt(v.X); i >= 0 {
				cmds = append(cmds, m.switchTo(Screen(i)))
			}
		}

	case tea.MouseWheelMsg:
		if m.state == StateReady && !m.overlayOpen() {
			cmds = append(cmds, m.updateActive(v))
		}

	case tea.KeyPressMsg:
		var cmd tea.Cmd
		var quit bool
		m, cmd, quit = m.handleKey(v)
		if quit {
			m.cancel()
			m.closeLists()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	default:
		// Filter cursor blinks and other component messages.
		cmds = append(cmds, m.updateActive(rawMsg))
	}

	if m.loading > 0 || m.state == StateConnecting {
		cmds = append(cmds, m.spinner.Start())
	} else {
		m.spinner.Stop()
	}
	m.updateStatus()
	return m, tea.Batch(cmds...)
}

// resize recomputes the layout and hands every list its new size. Hidden
// lists are sized too so switching tabs never re-measures.
func (m *Model) resize() tea.Cmd {
	m.layout = ComputeLayout(m.width, m.height)
	m.header.SetWidth(m.width)
	m.status.SetWidth(m.width)
	w, h := m.layout.ListWidth, m.layout.ListHeight
	return tea.Batch(
		m.albums.SetSize(w, h),
		m.tracks.SetSize(w, h),
		m.liked.SetSize(w, h),
		m.gallery.SetSize(w, h),
	)
}

func (m *Model) closeLists() {
	m.albums.Close()
	m.tracks.Close()
	m.liked.Close()
	m.gallery.Close()
}

// -- Health -------------------------------------------------------------------

func (m Model) checkHealth() tea.Cmd {
	hc, ok := m.source.(healthChecker)
	if !ok {
		return func() tea.Msg { return msg.HealthResult{Status: "ok"} }
	}
	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		h, err := hc.Health(ctx)
		if err != nil {
			return msg.HealthResult{Err: err}
		}
		return msg.HealthResult{Status: h.Status, Version: h.Version, Albums: h.Albums}
	}
}

func (m Model) handleHealth(h msg.HealthResult) (Model, tea.Cmd) {
	if h.Err != nil {
		m.log.Warn("library unreachable", "source", m.source.Name(), "err", h.Err)
		m.lastErr = h.Err
		m.state = StateConnecting
		return m, tea.Tick(retryDelay, func(time.Time) tea.Msg { return retryHealth{} })
	}
	if m.state == StateReady {
		return m, nil
	}
	m.log.Info("library ready", "source", m.source.Name(), "version", h.Version, "albums", h.Albums)
	m.lastErr = nil
	m.state = StateReady

	cmds := []tea.Cmd{m.reload()}
	if link := m.openLink; link != "" {
		m.openLink = ""
		cmds = append(cmds, func() tea.Msg { return msg.OpenLink{Link: link} })
	}
	return m, tea.Batch(cmds...)
}

// -- Loads --------------------------------------------------------------------

// reload starts over: a new album generation plus fresh liked and gallery
// listings.
func (m *Model) reload() tea.Cmd {
	cmd := m.albums.Reset()
	m.loading += 3
	return tea.Batch(cmd,
		m.loadAlbums(0, m.albums.Generation()),
		m.loadLiked(),
		m.loadGallery(),
	)
}

func (m Model) loadAlbums(page, gen int) tea.Cmd {
	src, ctx := m.source, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		p, err := src.AlbumsPage(ctx, page)
		if err != nil {
			err = fmt.Errorf("albums page %d: %w", page, err)
		}
		p.Page = page
		return msg.AlbumsPageLoaded{Page: p, Generation: gen, Err: err}
	}
}

func (m Model) handleAlbumsPage(v msg.AlbumsPageLoaded) (Model, tea.Cmd) {
	if v.Generation != m.albums.Generation() {
		// A reload superseded this load; its page is dropped.
		m.loading--
		return m, nil
	}
	if v.Err != nil {
		m.loading--
		m.log.Warn("load albums", "err", v.Err)
		return m, m.toasts.Add(v.Err.Error(), toast.Error)
	}
	more, cmd := m.albums.AddPage(v.Generation, v.Page)
	cmds := []tea.Cmd{cmd}
	if more {
		cmds = append(cmds, m.loadAlbums(v.Page.Page+1, v.Generation))
	} else {
		m.loading--
		m.log.Debug("albums loaded", "count", m.albums.Loaded())
	}
	// A track list opened from a link learns its album's details here.
	if open := m.tracks.Album(); open.ID != "" && open.Title == "" {
		if a, ok := m.albums.Album(open.ID); ok {
			cmds = append(cmds, m.tracks.SetAlbum(a))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) loadTracks(a library.Album, focus int) tea.Cmd {
	m.loading++
	src, ctx := m.source, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		ts, err := src.Tracks(ctx, a.ID)
		return msg.TracksLoaded{Album: a, Tracks: ts, FocusTrack: focus, Err: err}
	}
}

func (m Model) loadLiked() tea.Cmd {
	src, ctx := m.source, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		albums, err := src.Liked(ctx)
		return msg.LikedLoaded{Albums: albums, Err: err}
	}
}

func (m Model) loadGallery() tea.Cmd {
	src, ctx := m.source, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		images, err := src.Gallery(ctx)
		return msg.GalleryLoaded{Images: images, Err: err}
	}
}

// -- Actions ------------------------------------------------------------------

// openAlbum shows the track list of a, returning to the current screen on
// Esc. focus is a track number to reveal, or 0.
func (m *Model) openAlbum(a library.Album, focus int) tea.Cmd {
	if m.screen != ScreenTracks {
		m.back = m.screen
	}
	m.screen = ScreenTracks
	if known, ok := m.albums.Album(a.ID); ok {
		a = known
	}
	m.header.SetCrumb(a.Title)
	return tea.Batch(m.tracks.Open(a, focus), m.loadTracks(a, focus))
}

func (m Model) handleOpenLink(link string) (Model, tea.Cmd) {
	albumID, no, err := library.ParseLink(link)
	if err != nil {
		m.log.Warn("open link", "link", link, "err", err)
		return m, m.toasts.Add("bad link: "+link, toast.Error)
	}
	m.log.Info("open link", "album", albumID, "track", no)
	if m.screen == ScreenTracks && m.tracks.Album().ID == albumID && !m.tracks.Loading() {
		return m, m.tracks.Focus(no)
	}
	cmd := m.openAlbum(library.Album{ID: albumID}, no)
	return m, cmd
}

func (m Model) copyLink(t library.Track) tea.Cmd {
	link := library.ShareLink(t)
	copier, log := m.copier, m.log
	return func() tea.Msg {
		method, err := copier.Copy(link)
		if err == nil {
			log.Debug("link copied", "method", method)
		}
		return msg.LinkCopied{Link: link, Err: err}
	}
}

func (m *Model) toggleLike(t library.Track) tea.Cmd {
	liker, ok := m.source.(library.Liker)
	if !ok {
		return m.toasts.Add(m.source.Name()+" is read-only", toast.Warning)
	}
	ctx, want := m.ctx, !t.Liked
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		err := liker.SetLiked(ctx, t, want)
		return likeResult{track: t, liked: want, err: err}
	}
}

func (m Model) handleLike(r likeResult) (Model, tea.Cmd) {
	if r.err != nil {
		m.log.Warn("like", "track", r.track.Key(), "err", r.err)
		return m, m.toasts.Add("like failed: "+r.err.Error(), toast.Error)
	}
	word := "liked"
	if !r.liked {
		word = "unliked"
	}
	m.loading++
	return m, tea.Batch(
		m.tracks.MarkLiked(r.track, r.liked),
		m.liked.MarkLiked(r.track, r.liked),
		m.toasts.Add(word+" "+r.track.Title, toast.Info),
		// Newly liked albums join the liked list.
		m.loadLiked(),
	)
}

func (m *Model) cycleTheme() tea.Cmd {
	name := style.NextTheme()
	style.SetTheme(name)
	m.spinner.Recolor()
	m.config.Theme = name
	if m.profile != "" {
		if err := config.Save(m.profile, m.config); err != nil {
			m.log.Warn("save config", "err", err)
		}
	}
	return tea.Batch(
		m.albums.List().Remeasure(),
		m.tracks.Restyle(),
		m.liked.List().Remeasure(),
		m.gallery.List().Remeasure(),
		m.toasts.Add("theme "+name, toast.Info),
	)
}

// switchTo focuses a tab.
func (m *Model) switchTo(s Screen) tea.Cmd {
	if s == m.screen {
		return nil
	}
	m.screen = s
	m.header.SetCrumb("")
	if t := s.tab(); t >= 0 {
		m.header.SetActive(t)
	}
	return nil
}

// -- Key handling -------------------------------------------------------------

func (m Model) handleKey(k tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	if key.Matches(k, m.keys.Cancel) {
		return m, nil, true
	}

	// Overlays swallow keys until closed.
	if m.showHelp {
		if key.Matches(k, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil, false
	}
	if m.debug.Open() {
		if key.Matches(k, m.keys.Debug, m.keys.Escape) {
			m.debug.Toggle()
			return m, nil, false
		}
		// The overlay is live, so navigation still reaches the list.
		return m, m.updateActive(k), false
	}

	if m.state != StateReady {
		if key.Matches(k, m.keys.Quit) {
			return m, nil, true
		}
		return m, nil, false
	}

	// An editing filter takes every key.
	if m.filtering() {
		return m, m.updateActive(k), false
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		return m, nil, true
	case key.Matches(k, m.keys.Help):
		m.showHelp = true
		return m, nil, false
	case key.Matches(k, m.keys.Debug):
		m.debug.Toggle()
		return m, nil, false
	case key.Matches(k, m.keys.Theme):
		return m, m.cycleTheme(), false
	case key.Matches(k, m.keys.Reload):
		return m, m.reload(), false
	case key.Matches(k, m.keys.Browse):
		return m, m.switchTo(ScreenAlbums), false
	case key.Matches(k, m.keys.Liked):
		return m, m.switchTo(ScreenLiked), false
	case key.Matches(k, m.keys.Gallery):
		return m, m.switchTo(ScreenGallery), false
	case key.Matches(k, m.keys.NextTab):
		return m, m.switchTo(Screen((m.currentTab() + 1) % len(tabs))), false
	case key.Matches(k, m.keys.PrevTab):
		return m, m.switchTo(Screen((m.currentTab() + len(tabs) - 1) % len(tabs))), false
	}

	switch m.screen {
	case ScreenAlbums:
		switch {
		case key.Matches(k, m.keys.Open):
			if a, ok := m.albums.Selected(); ok {
				return m, m.openAlbum(a, 0), false
			}
			return m, nil, false
		case key.Matches(k, m.keys.Escape):
			return m, m.albums.ClearFilter(), false
		}

	case ScreenTracks:
		switch {
		case key.Matches(k, m.keys.Escape):
			if m.tracks.Query() != "" {
				return m, m.tracks.ClearFilter(), false
			}
			return m, m.switchTo(m.back), false
		case key.Matches(k, m.keys.Copy):
			if t, ok := m.tracks.Selected(); ok {
				return m, m.copyLink(t), false
			}
			return m, nil, false
		case key.Matches(k, m.keys.Like):
			if t, ok := m.tracks.Selected(); ok {
				return m, m.toggleLike(t), false
			}
			return m, nil, false
		}

	case ScreenLiked:
		switch {
		case key.Matches(k, m.keys.Open):
			// Enter on a track opens its album there; on a header it
			// expands the group.
			if t, ok := m.liked.SelectedTrack(); ok {
				row, _ := m.liked.Selected()
				return m, m.openAlbum(row.Album, t.No), false
			}
		case key.Matches(k, m.keys.Copy):
			if t, ok := m.liked.SelectedTrack(); ok {
				return m, m.copyLink(t), false
			}
			return m, nil, false
		case key.Matches(k, m.keys.Like):
			if t, ok := m.liked.SelectedTrack(); ok {
				return m, m.toggleLike(t), false
			}
			return m, nil, false
		}

	case ScreenGallery:
		if key.Matches(k, m.keys.Open) {
			if img, ok := m.gallery.Selected(); ok && img.AlbumID != "" {
				return m, m.openAlbum(library.Album{ID: img.AlbumID, Title: img.Title}, 0), false
			}
			return m, nil, false
		}
	}

	return m, m.updateActive(k), false
}

// currentTab is the tab of the focused screen, or of the screen the track
// list was opened from.
func (m Model) currentTab() int {
	if m.screen == ScreenTracks {
		return m.back.tab()
	}
	return m.screen.tab()
}

func (m Model) filtering() bool {
	switch m.screen {
	case ScreenAlbums:
		return m.albums.Filtering()
	case ScreenTracks:
		return m.tracks.Filtering()
	}
	return false
}

func (m Model) overlayOpen() bool { return m.showHelp || m.debug.Open() }

// updateActive routes msg to the focused list.
func (m Model) updateActive(msg tea.Msg) tea.Cmd {
	switch m.screen {
	case ScreenAlbums:
		return m.albums.Update(msg)
	case ScreenTracks:
		return m.tracks.Update(msg)
	case ScreenLiked:
		return m.liked.Update(msg)
	case ScreenGallery:
		return m.gallery.Update(msg)
	}
	return nil
}

// activeList is the focused list as seen by the status bar and the debug
// overlay.
func (m Model) activeList() interface {
	Snapshot() window.Snapshot
	Status() status.List
} {
	switch m.screen {
	case ScreenTracks:
		return m.tracks
	case ScreenLiked:
		return m.liked
	case ScreenGallery:
		return m.gallery
	default:
		return m.albums
	}
}

func (m *Model) updateStatus() {
	m.status.SetList(m.activeList().Status())
	m.status.SetProgress(m.albums.Progress())
	m.status.SetLoading(m.spinner.View())
	m.status.SetHint(common.KeyHelp(m.keys.Help, m.keys.Quit))
	m.debug.SetSource(m.activeList())
}

// -- View ---------------------------------------------------------------------

// View returns the tea.View for the current frame.
// AltScreen and MouseMode are set on every frame.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderView())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderView composes the full terminal frame as a string.
func (m Model) renderView() string {
	if m.state == StateConnecting {
		return m.renderConnecting()
	}

	h := m.layout.ListHeight
	var main string
	switch {
	case m.showHelp:
		main = lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.helpView())
	case m.debug.Open():
		main = lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.debug.View(m.width, h))
	default:
		main = m.activeView()
	}
	main = fitHeight(main, h)
	if m.toasts.Len() > 0 {
		main = overlayBottom(main, m.toasts.View(m.width))
	}

	return strings.Join([]string{m.header.View(), main, m.status.View()}, "\n")
}

func (m Model) activeView() string {
	switch m.screen {
	case ScreenTracks:
		return m.tracks.View()
	case ScreenLiked:
		return m.liked.View()
	case ScreenGallery:
		return m.gallery.View()
	default:
		return m.albums.View()
	}
}

func (m Model) renderConnecting() string {
	status := []string{m.spinner.View() + style.Faint.Render("  "+m.source.Name())}
	if m.lastErr != nil {
		status = append(status, "",
			style.ErrorText.Render(common.Truncate(m.lastErr.Error(), max(m.width-4, 10))),
			style.Hint.Render(fmt.Sprintf("retrying every %s", retryDelay)))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		logo.Banner(m.width, m.version, status...))
}

func (m Model) helpView() string {
	nav := window.DefaultKeyMap()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		common.HelpColumn(nav.Up, nav.Down, nav.Left, nav.Right, nav.PageUp, nav.PageDown, nav.Home, nav.End),
		"    ",
		common.HelpColumn(m.keys.Open, m.keys.Escape, m.keys.Filter, m.keys.Copy, m.keys.Like, m.keys.Expand,
			m.keys.NextTab, m.keys.Reload, m.keys.Theme, m.keys.Debug, m.keys.Quit),
	)
	return common.Modal("keys", body, min(max(m.width-4, 20), lipgloss.Width(body)+4))
}

// fitHeight pads or cuts s to exactly h lines.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// overlayBottom replaces the last lines of base with the lines of top.
func overlayBottom(base, top string) string {
	lines := strings.Split(base, "\n")
	over := strings.Split(top, "\n")
	start := max(len(lines)-len(over), 0)
	for i, l := range over {
		if start+i < len(lines) {
			lines[start+i] = l
		}
	}
	return strings.Join(lines, "\n")
}
