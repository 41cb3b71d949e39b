package library

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

var (
	demoAdjectives = []string{
		"Silent", "Electric", "Golden", "Broken", "Midnight", "Velvet", "Hollow",
		"Northern", "Paper", "Neon", "Distant", "Burning", "Quiet", "Crystal",
		"Wandering", "Static", "Amber", "Lunar", "Restless", "Faded",
	}
	demoNouns = []string{
		"Harbor", "Signals", "Orchard", "Engines", "Rivers", "Lanterns", "Echoes",
		"Satellites", "Gardens", "Tides", "Machines", "Letters", "Horizons",
		"Cathedrals", "Mirrors", "Islands", "Wires", "Summers", "Ghosts", "Maps",
	}
	demoArtists = []string{
		"The Low Hours", "Marisol Vega", "Kite Theory", "Oskar Lind", "Pale Atlas",
		"June Okafor", "Static Bloom", "The Meridians", "Ines Duarte", "Hollow Pines",
		"Theo Marchetti", "Glass Harbor", "Wren & Ash", "Northbound", "Yuki Sato",
	}
	demoGenres = []string{
		"indie", "jazz", "electronic", "folk", "ambient", "rock", "soul", "classical",
	}
	demoWords = []string{
		"light", "home", "road", "fire", "night", "rain", "dawn", "heart", "sea",
		"stone", "wind", "song", "city", "dream", "glass", "shadow", "river", "sky",
	}
)

// DemoOption configures a Demo source.
type DemoOption func(*Demo)

// WithAlbums sets the number of albums in the catalogue.
func WithAlbums(n int) DemoOption { return func(d *Demo) { d.count = n } }

// WithPageSize sets the album page size.
func WithPageSize(n int) DemoOption { return func(d *Demo) { d.pageSize = n } }

// WithLatency delays every call, to exercise loading states.
func WithLatency(l time.Duration) DemoOption { return func(d *Demo) { d.latency = l } }

// WithSeed changes the generated catalogue.
func WithSeed(seed int64) DemoOption { return func(d *Demo) { d.seed = seed } }

// Demo is a deterministic synthetic catalogue. Every 150th album is a box
// set with hundreds of tracks so that track lists grow long enough to be
// windowed.
type Demo struct {
	count    int
	pageSize int
	latency  time.Duration
	seed     int64

	albums []Album
	index  map[string]int

	mu    sync.Mutex
	likes map[string]bool
}

// NewDemo builds the catalogue.
func NewDemo(opts ...DemoOption) *Demo {
	d := &Demo{count: 1200, pageSize: 200, seed: 1}
	for _, opt := range opts {
		opt(d)
	}
	d.count = max(d.count, 0)
	d.pageSize = max(d.pageSize, 1)

	d.albums = make([]Album, d.count)
	d.index = make(map[string]int, d.count)
	d.likes = map[string]bool{}
	for i := range d.albums {
		d.albums[i] = d.album(i)
		d.index[d.albums[i].ID] = i
	}
	return d
}

func (d *Demo) Name() string { return "demo" }

func (d *Demo) album(i int) Album {
	r := rand.New(rand.NewSource(d.seed*1_000_003 + int64(i)))
	title := demoAdjectives[r.Intn(len(demoAdjectives))] + " " + demoNouns[r.Intn(len(demoNouns))]
	artist := demoArtists[r.Intn(len(demoArtists))]
	genre := demoGenres[r.Intn(len(demoGenres))]
	year := 1962 + r.Intn(63)

	tracks := 8 + r.Intn(11)
	if (i+1)%150 == 0 {
		title += " (Complete Sessions)"
		tracks = 150 + r.Intn(1051)
	}

	id := fmt.Sprintf("al%04d", i+1)
	return Album{
		ID:         id,
		Title:      title,
		Artist:     artist,
		Year:       year,
		Genre:      genre,
		TrackCount: tracks,
		Notes: fmt.Sprintf("**%s** by *%s*, released %d.\n\n%d tracks of %s recorded in one long week.",
			title, artist, year, tracks, genre),
		CoverURL: "demo://cover/" + id + ".jpg",
	}
}

func (d *Demo) tracks(i int) []Track {
	a := d.albums[i]
	r := rand.New(rand.NewSource(d.seed*7_919 + int64(i)))
	out := make([]Track, a.TrackCount)
	for n := range out {
		w1 := demoWords[r.Intn(len(demoWords))]
		w2 := demoWords[r.Intn(len(demoWords))]
		out[n] = Track{
			AlbumID: a.ID,
			No:      n + 1,
			Disc:    1 + n/25,
			Title:   strings.ToUpper(w1[:1]) + w1[1:] + " of the " + w2,
			Artist:  a.Artist,
			Seconds: 120 + r.Intn(300),
			Liked:   r.Intn(9) == 0,
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for n := range out {
		if liked, ok := d.likes[out[n].Key()]; ok {
			out[n].Liked = liked
		}
	}
	return out
}

// SetLiked records a like in memory.
func (d *Demo) SetLiked(ctx context.Context, t Track, liked bool) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	if _, ok := d.index[t.AlbumID]; !ok {
		return fmt.Errorf("like %s: %w", t.Key(), ErrNotFound)
	}
	d.mu.Lock()
	d.likes[t.Key()] = liked
	d.mu.Unlock()
	return nil
}

func (d *Demo) wait(ctx context.Context) error {
	if d.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// AlbumsPage returns page (zero based) of the catalogue.
func (d *Demo) AlbumsPage(ctx context.Context, page int) (Page[Album], error) {
	if err := d.wait(ctx); err != nil {
		return Page[Album]{}, err
	}
	if page < 0 {
		return Page[Album]{}, fmt.Errorf("albums page %d: negative page", page)
	}
	start := min(page*d.pageSize, len(d.albums))
	end := min(start+d.pageSize, len(d.albums))
	items := make([]Album, end-start)
	copy(items, d.albums[start:end])
	return Page[Album]{
		Items: items,
		Page:  page,
		Total: len(d.albums),
		Next:  end < len(d.albums),
	}, nil
}

// Tracks returns the tracks of an album in order.
func (d *Demo) Tracks(ctx context.Context, albumID string) ([]Track, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	i, ok := d.index[albumID]
	if !ok {
		return nil, fmt.Errorf("tracks of %q: %w", albumID, ErrNotFound)
	}
	return d.tracks(i), nil
}

// Liked returns every seventh album with its full track list.
func (d *Demo) Liked(ctx context.Context) ([]LikedAlbum, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	var out []LikedAlbum
	for i := 0; i < len(d.albums); i += 7 {
		out = append(out, LikedAlbum{Album: d.albums[i], Tracks: d.tracks(i)})
	}
	return out, nil
}

// Gallery returns one cover per album.
func (d *Demo) Gallery(ctx context.Context) ([]Image, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	out := make([]Image, len(d.albums))
	for i, a := range d.albums {
		out[i] = Image{URL: a.CoverURL, AlbumID: a.ID, Title: a.Title, Width: 600, Height: 600}
	}
	return out, nil
}
