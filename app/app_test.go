package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/tunes/client"
	"github.com/miosa/tunes/config"
	"github.com/miosa/tunes/library"
	"github.com/miosa/tunes/msg"
	"github.com/miosa/tunes/style"
	"github.com/miosa/tunes/ui/clipboard"
)

type fakeCopier struct{ copied []string }

func (c *fakeCopier) Copy(text string) (clipboard.Method, error) {
	c.copied = append(c.copied, text)
	return clipboard.Native, nil
}

// downSource fails its health check.
type downSource struct{ *library.Demo }

func (downSource) Health(context.Context) (*client.HealthResponse, error) {
	return nil, errors.New("connection refused")
}

func step(t *testing.T, m Model, v tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(v)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

// newReady returns a model whose lists are loaded from a demo library of n
// albums, fed synchronously.
func newReady(t *testing.T, n int, opts Options) (Model, *library.Demo) {
	t.Helper()
	src := library.NewDemo(library.WithAlbums(n), library.WithPageSize(50))
	opts.Config = config.Defaults()
	if opts.Copier == nil {
		opts.Copier = &fakeCopier{}
	}
	m := New(src, opts)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = step(t, m, msg.HealthResult{Status: "ok"})
	require.Equal(t, StateReady, m.state)

	ctx := context.Background()
	for p := 0; ; p++ {
		page, err := src.AlbumsPage(ctx, p)
		require.NoError(t, err)
		m, _ = step(t, m, msg.AlbumsPageLoaded{Page: page, Generation: m.albums.Generation()})
		if !page.Next {
			break
		}
	}
	liked, err := src.Liked(ctx)
	require.NoError(t, err)
	m, _ = step(t, m, msg.LikedLoaded{Albums: liked})
	images, err := src.Gallery(ctx)
	require.NoError(t, err)
	m, _ = step(t, m, msg.GalleryLoaded{Images: images})
	return m, src
}

func loadTracks(t *testing.T, m Model, src *library.Demo, focus int) Model {
	t.Helper()
	a := m.tracks.Album()
	ts, err := src.Tracks(context.Background(), a.ID)
	require.NoError(t, err)
	m, _ = step(t, m, msg.TracksLoaded{Album: a, Tracks: ts, FocusTrack: focus})
	return m
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(120, 40)
	assert.Equal(t, 120, l.ListWidth)
	assert.Equal(t, 37, l.ListHeight)

	tiny := ComputeLayout(20, 2)
	assert.Equal(t, minListHeight, tiny.ListHeight)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "tracks", ScreenTracks.String())
	assert.Equal(t, -1, ScreenTracks.tab())
	assert.Equal(t, 2, ScreenGallery.tab())
}

func TestHealthFailureKeepsConnecting(t *testing.T) {
	m := New(downSource{library.NewDemo(library.WithAlbums(3))}, Options{Config: config.Defaults()})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	res := m.checkHealth()()
	m, cmd := step(t, m, res)
	assert.Equal(t, StateConnecting, m.state)
	assert.NotNil(t, cmd, "retry scheduled")
	assert.Contains(t, m.renderView(), "connection refused")
	assert.Contains(t, m.renderView(), "retrying")
}

func TestReadyLoadsEveryList(t *testing.T) {
	m, _ := newReady(t, 120, Options{})

	assert.Equal(t, 0, m.loading)
	assert.Equal(t, 120, m.albums.Loaded())
	assert.Equal(t, 1.0, m.albums.Progress())
	assert.True(t, m.liked.Loaded())
	assert.True(t, m.gallery.Loaded())

	view := m.renderView()
	assert.Contains(t, view, "Browse")
	assert.Contains(t, view, "demo")
}

func TestReloadDropsStalePages(t *testing.T) {
	m, src := newReady(t, 120, Options{})
	old := m.albums.Generation()

	m, _ = step(t, m, press('r'))
	assert.Equal(t, 3, m.loading)
	assert.Equal(t, 0, m.albums.Loaded())

	page, err := src.AlbumsPage(context.Background(), 0)
	require.NoError(t, err)
	m, _ = step(t, m, msg.AlbumsPageLoaded{Page: page, Generation: old})
	assert.Equal(t, 0, m.albums.Loaded())
	assert.Equal(t, 2, m.loading)
}

func TestOpenAlbumAndBack(t *testing.T) {
	m, src := newReady(t, 30, Options{})

	m, _ = step(t, m, enter)
	require.Equal(t, ScreenTracks, m.screen)
	assert.Equal(t, "al0001", m.tracks.Album().ID)
	assert.Equal(t, 1, m.loading)

	m = loadTracks(t, m, src, 0)
	assert.Equal(t, 0, m.loading)
	assert.False(t, m.tracks.Loading())
	assert.Contains(t, m.renderView(), m.tracks.Album().Title)

	m, _ = step(t, m, esc)
	assert.Equal(t, ScreenAlbums, m.screen)
}

func TestOpenLinkFocusesTrack(t *testing.T) {
	m, src := newReady(t, 200, Options{})
	m, _ = step(t, m, press('2'))

	m, _ = step(t, m, msg.OpenLink{Link: "tunes://track/al0150/120"})
	require.Equal(t, ScreenTracks, m.screen)
	assert.Equal(t, ScreenLiked, m.back)

	m = loadTracks(t, m, src, 120)
	sel, ok := m.tracks.Selected()
	require.True(t, ok)
	assert.Equal(t, 120, sel.No)

	m, _ = step(t, m, esc)
	assert.Equal(t, ScreenLiked, m.screen)
}

func TestOpenLinkRejectsGarbage(t *testing.T) {
	m, _ := newReady(t, 10, Options{})
	m, _ = step(t, m, msg.OpenLink{Link: "https://example.com"})
	assert.Equal(t, ScreenAlbums, m.screen)
	assert.Equal(t, 1, m.toasts.Len())
}

func TestCopyLink(t *testing.T) {
	cp := &fakeCopier{}
	m, src := newReady(t, 10, Options{Copier: cp})
	m, _ = step(t, m, enter)
	m = loadTracks(t, m, src, 0)

	_, cmd := step(t, m, press('y'))
	require.NotNil(t, cmd)
	res, ok := cmd().(msg.LinkCopied)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"tunes://track/al0001/1"}, cp.copied)

	m, _ = step(t, m, res)
	assert.Equal(t, 1, m.toasts.Len())
}

func TestLikeTrack(t *testing.T) {
	m, src := newReady(t, 10, Options{})
	m, _ = step(t, m, enter)
	m = loadTracks(t, m, src, 0)
	before, _ := m.tracks.Selected()

	_, cmd := step(t, m, press('f'))
	require.NotNil(t, cmd)
	res, ok := cmd().(likeResult)
	require.True(t, ok)
	require.NoError(t, res.err)

	m, _ = step(t, m, res)
	after, _ := m.tracks.Selected()
	assert.Equal(t, !before.Liked, after.Liked)
	assert.Equal(t, before.No, after.No)
	assert.Equal(t, 1, m.loading, "liked list reloads")
}

func TestTabs(t *testing.T) {
	m, _ := newReady(t, 10, Options{})

	m, _ = step(t, m, press('2'))
	assert.Equal(t, ScreenLiked, m.screen)
	assert.Equal(t, 1, m.header.Active())

	m, _ = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, ScreenGallery, m.screen)

	m, _ = step(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, ScreenAlbums, m.screen)
}

func TestGalleryOpensAlbum(t *testing.T) {
	m, _ := newReady(t, 10, Options{})
	m, _ = step(t, m, press('3'))
	m, _ = step(t, m, enter)
	assert.Equal(t, ScreenTracks, m.screen)
	assert.Equal(t, "al0001", m.tracks.Album().ID)
	assert.Equal(t, ScreenGallery, m.back)
}

func TestFilterTakesKeys(t *testing.T) {
	m, _ := newReady(t, 10, Options{})

	m, _ = step(t, m, press('/'))
	require.True(t, m.albums.Filtering())

	m, _ = step(t, m, press('q'))
	assert.Equal(t, "q", m.albums.Query())
	assert.True(t, m.albums.Filtering())
}

func TestQuit(t *testing.T) {
	m, _ := newReady(t, 10, Options{})
	_, cmd := step(t, m, press('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestOverlays(t *testing.T) {
	m, _ := newReady(t, 10, Options{})

	m, _ = step(t, m, press('?'))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.renderView(), "keys")
	m, _ = step(t, m, press('?'))
	assert.False(t, m.showHelp)

	m, _ = step(t, m, tea.KeyPressMsg{Code: tea.KeyF2})
	assert.True(t, m.debug.Open())
	assert.Contains(t, m.renderView(), "window · albums")
	m, _ = step(t, m, esc)
	assert.False(t, m.debug.Open())
}

func TestThemeCycles(t *testing.T) {
	t.Cleanup(func() { style.SetTheme("dark") })
	m, _ := newReady(t, 10, Options{})
	want := style.NextTheme()

	m, _ = step(t, m, press('t'))
	assert.Equal(t, want, style.CurrentThemeName)
	assert.Equal(t, want, m.config.Theme)
}

func TestViewFillsTerminal(t *testing.T) {
	m, _ := newReady(t, 300, Options{})
	v := m.View()
	assert.True(t, v.AltScreen)

	for _, s := range []rune{'1', '2', '3'} {
		m, _ = step(t, m, press(s))
		assert.Len(t, strings.Split(m.renderView(), "\n"), 40, "screen %c", s)
	}
}

func TestOverlayBottom(t *testing.T) {
	got := overlayBottom("a\nb\nc", "X")
	assert.Equal(t, "a\nb\nX", got)
	assert.Equal(t, "a\nb\n", fitHeight("a\nb", 3))
	assert.Equal(t, "a", fitHeight("a\nb", 1))
}
