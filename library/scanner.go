package library

import (
	"bufio"
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dhowden/tag"
)

// LikedFile lists share links of liked tracks, one per line, at the root of
// a scanned directory.
const LikedFile = "liked.txt"

var (
	audioExts  = []string{".mp3", ".flac", ".m4a", ".ogg"}
	coverNames = []string{"cover.jpg", "cover.png", "folder.jpg", "front.jpg"}
	leadingNo  = regexp.MustCompile(`^(\d{1,3})[\s._-]+(.+)$`)
)

// Scanner is a Source backed by a directory of audio files. Albums are
// grouped by their tags, falling back to "Artist - Album" directory names
// and "NN Title" file names for untagged files. The tree is walked once, on
// first use.
type Scanner struct {
	fsys     fs.FS
	name     string
	pageSize int
	log      *slog.Logger

	once   sync.Once
	err    error
	albums []Album
	tracks map[string][]Track
}

// NewScanner returns a scanner over fsys. name is shown in the status bar.
func NewScanner(fsys fs.FS, name string, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{fsys: fsys, name: name, pageSize: 200, log: log}
}

func (s *Scanner) Name() string { return s.name }

func (s *Scanner) load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.once.Do(func() { s.err = s.scan(ctx) })
	return s.err
}

type scanned struct {
	album  Album
	tracks []Track
}

func (s *Scanner) scan(ctx context.Context) error {
	byID := map[string]*scanned{}
	covers := map[string]string{}

	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := strings.ToLower(d.Name())
		if slices.Contains(coverNames, base) {
			dir := path.Dir(p)
			if _, ok := covers[dir]; !ok {
				covers[dir] = p
			}
			return nil
		}
		if !slices.Contains(audioExts, strings.ToLower(path.Ext(base))) {
			return nil
		}

		a, t := s.readTrack(p)
		group, ok := byID[a.ID]
		if !ok {
			group = &scanned{album: a}
			byID[a.ID] = group
		}
		if group.album.CoverURL == "" {
			group.album.CoverURL = a.CoverURL
		}
		if group.album.CoverURL == "" {
			group.album.CoverURL = "dir:" + path.Dir(p)
		}
		group.tracks = append(group.tracks, t)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", s.name, err)
	}

	liked, err := s.readLiked()
	if err != nil {
		s.log.Warn("library: ignoring liked list", "err", err)
	}

	s.tracks = make(map[string][]Track, len(byID))
	for id, g := range byID {
		slices.SortStableFunc(g.tracks, func(a, b Track) int {
			return cmp.Or(cmp.Compare(a.Disc, b.Disc), cmp.Compare(a.No, b.No), cmp.Compare(a.Path, b.Path))
		})
		for i := range g.tracks {
			// Untagged files without a leading number take their position.
			if g.tracks[i].No <= 0 {
				g.tracks[i].No = i + 1
			}
			g.tracks[i].Liked = liked[g.tracks[i].Key()]
		}
		if dir, ok := strings.CutPrefix(g.album.CoverURL, "dir:"); ok {
			g.album.CoverURL = ""
			if cover, ok := covers[dir]; ok {
				g.album.CoverURL = "file://" + cover
			}
		}
		g.album.TrackCount = len(g.tracks)
		s.albums = append(s.albums, g.album)
		s.tracks[id] = g.tracks
	}
	slices.SortFunc(s.albums, func(a, b Album) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Artist), strings.ToLower(b.Artist)),
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
			cmp.Compare(a.ID, b.ID),
		)
	})
	s.log.Info("library: scanned", "source", s.name, "albums", len(s.albums))
	return nil
}

// readTrack reads one audio file. Unreadable tags are not an error; the
// track is described from its path instead.
func (s *Scanner) readTrack(p string) (Album, Track) {
	dir := path.Dir(p)
	artist, title := splitDirName(path.Base(dir))
	no, name := splitFileName(path.Base(p))
	a := Album{Title: title, Artist: artist}
	t := Track{No: no, Title: name, Artist: artist, Path: p}

	md, err := s.readTags(p)
	switch {
	case err == nil:
		a.Title = cmp.Or(md.Album(), a.Title)
		a.Artist = cmp.Or(md.AlbumArtist(), md.Artist(), a.Artist)
		a.Year = md.Year()
		a.Genre = md.Genre()
		a.Notes = md.Comment()
		if md.Picture() != nil {
			a.CoverURL = "embedded://" + p
		}
		t.Title = cmp.Or(md.Title(), t.Title)
		t.Artist = cmp.Or(md.Artist(), a.Artist)
		if n, _ := md.Track(); n > 0 {
			t.No = n
		}
		t.Disc, _ = md.Disc()
	case errors.Is(err, tag.ErrNoTagsFound):
	default:
		s.log.Debug("library: unreadable tags", "path", p, "err", err)
	}

	a.ID = albumID(a.Artist, a.Title)
	t.AlbumID = a.ID
	return a, t
}

func (s *Scanner) readTags(p string) (tag.Metadata, error) {
	f, err := s.fsys.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		rs = bytes.NewReader(data)
	}
	return tag.ReadFrom(rs)
}

func (s *Scanner) readLiked() (map[string]bool, error) {
	f, err := s.fsys.Open(LikedFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	liked := map[string]bool{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, no, err := ParseLink(line)
		if err != nil {
			s.log.Debug("library: bad liked link", "line", line, "err", err)
			continue
		}
		liked[Track{AlbumID: id, No: no}.Key()] = true
	}
	return liked, sc.Err()
}

func splitDirName(name string) (artist, album string) {
	if a, b, ok := strings.Cut(name, " - "); ok {
		return strings.TrimSpace(a), strings.TrimSpace(b)
	}
	if name == "." || name == "" {
		return "Unknown Artist", "Unknown Album"
	}
	return "Unknown Artist", name
}

func splitFileName(name string) (int, string) {
	name = strings.TrimSuffix(name, path.Ext(name))
	if m := leadingNo.FindStringSubmatch(name); m != nil {
		no, _ := strconv.Atoi(m[1])
		return no, m[2]
	}
	return 0, name
}

func albumID(artist, title string) string {
	h := fnv.New32a()
	io.WriteString(h, strings.ToLower(artist))
	h.Write([]byte{0})
	io.WriteString(h, strings.ToLower(title))
	return fmt.Sprintf("lb%08x", h.Sum32())
}

// AlbumsPage returns page (zero based) of the scanned albums.
func (s *Scanner) AlbumsPage(ctx context.Context, page int) (Page[Album], error) {
	if err := s.load(ctx); err != nil {
		return Page[Album]{}, err
	}
	if page < 0 {
		return Page[Album]{}, fmt.Errorf("albums page %d: negative page", page)
	}
	start := min(page*s.pageSize, len(s.albums))
	end := min(start+s.pageSize, len(s.albums))
	return Page[Album]{
		Items: slices.Clone(s.albums[start:end]),
		Page:  page,
		Total: len(s.albums),
		Next:  end < len(s.albums),
	}, nil
}

func (s *Scanner) Tracks(ctx context.Context, id string) ([]Track, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	tracks, ok := s.tracks[id]
	if !ok {
		return nil, fmt.Errorf("tracks of %q: %w", id, ErrNotFound)
	}
	return slices.Clone(tracks), nil
}

// Liked returns the albums holding at least one liked track.
func (s *Scanner) Liked(ctx context.Context) ([]LikedAlbum, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	var out []LikedAlbum
	for _, a := range s.albums {
		tracks := s.tracks[a.ID]
		if slices.ContainsFunc(tracks, func(t Track) bool { return t.Liked }) {
			out = append(out, LikedAlbum{Album: a, Tracks: slices.Clone(tracks)})
		}
	}
	return out, nil
}

// Gallery returns the covers that were found.
func (s *Scanner) Gallery(ctx context.Context) ([]Image, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	var out []Image
	for _, a := range s.albums {
		if a.CoverURL != "" {
			out = append(out, Image{URL: a.CoverURL, AlbumID: a.ID, Title: a.Title})
		}
	}
	return out, nil
}
