package library

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// LinkScheme is the URL scheme of shareable track links.
const LinkScheme = "tunes"

// ShareLink returns the link that reopens t: tunes://track/<albumID>/<no>.
func ShareLink(t Track) string {
	u := url.URL{
		Scheme:  LinkScheme,
		Host:    "track",
		Path:    "/" + t.AlbumID + "/" + strconv.Itoa(t.No),
		RawPath: "/" + url.PathEscape(t.AlbumID) + "/" + strconv.Itoa(t.No),
	}
	return u.String()
}

// ParseLink extracts the album ID and track number from a share link.
func ParseLink(link string) (albumID string, trackNo int, err error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", 0, fmt.Errorf("parse link: %w", err)
	}
	if u.Scheme != LinkScheme || u.Host != "track" {
		return "", 0, fmt.Errorf("parse link %q: not a %s://track link", link, LinkScheme)
	}
	parts := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, fmt.Errorf("parse link %q: want /<album>/<track>", link)
	}
	albumID, err = url.PathUnescape(parts[0])
	if err != nil {
		return "", 0, fmt.Errorf("parse link %q: %w", link, err)
	}
	trackNo, err = strconv.Atoi(parts[1])
	if err != nil || trackNo <= 0 {
		return "", 0, fmt.Errorf("parse link %q: bad track number %q", link, parts[1])
	}
	return albumID, trackNo, nil
}

// IndexOf returns the index of the track numbered no, or -1.
func IndexOf(tracks []Track, no int) int {
	for i, t := range tracks {
		if t.No == no {
			return i
		}
	}
	return -1
}
