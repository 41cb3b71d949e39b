package app

// State represents the current application state.
type State int

const (
	StateConnecting State = iota // Waiting for the library server health check
	StateReady                   // Browsing
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Screen is the list that has focus.
type Screen int

const (
	ScreenAlbums Screen = iota
	ScreenLiked
	ScreenGallery
	ScreenTracks // reached from any tab; Esc returns there
)

// tabs are the header labels, indexed by Screen.
var tabs = []string{"Browse", "Liked", "Gallery"}

func (s Screen) String() string {
	switch s {
	case ScreenAlbums:
		return "albums"
	case ScreenLiked:
		return "liked"
	case ScreenGallery:
		return "gallery"
	case ScreenTracks:
		return "tracks"
	default:
		return "unknown"
	}
}

// tab returns the header tab a screen belongs to.
func (s Screen) tab() int {
	if s >= ScreenTracks {
		return -1
	}
	return int(s)
}
