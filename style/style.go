package style

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Colors, initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	TileBgColor      color.Color = lipgloss.Color("#1F2937")
	SelectionBgColor color.Color = lipgloss.Color("#312E81")
	LikedColor       color.Color = lipgloss.Color("#F472B6")
	ModalBgColor     color.Color = lipgloss.Color("#111827")

	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Base styles, rebuilt when the theme changes via rebuildStyles().
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style
	Hint      lipgloss.Style

	// Tabs
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	TabSeparator lipgloss.Style

	// Album and gallery tiles. Both tile styles carry a border so selection
	// never changes a tile's size.
	Tile         lipgloss.Style
	TileSelected lipgloss.Style
	TileTitle    lipgloss.Style
	TileArtist   lipgloss.Style
	TileMeta     lipgloss.Style

	// Track rows
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowNumber   lipgloss.Style
	RowArtist   lipgloss.Style
	RowLength   lipgloss.Style
	Liked       lipgloss.Style

	// Liked album group headers
	GroupHeader         lipgloss.Style
	GroupHeaderSelected lipgloss.Style
	GroupCaret          lipgloss.Style

	// Album header above the track list
	AlbumTitle  lipgloss.Style
	AlbumMeta   lipgloss.Style
	AlbumDivide lipgloss.Style

	// Status bar
	StatusBar      lipgloss.Style
	StatusKey      lipgloss.Style
	StatusValue    lipgloss.Style
	WindowOn       lipgloss.Style
	WindowOff      lipgloss.Style
	WindowDisabled lipgloss.Style

	// Filter input
	FilterPrompt lipgloss.Style
	FilterMatch  lipgloss.Style

	SpinnerStyle lipgloss.Style

	// -------------------------------------------------------------------------
	// Overlays
	// -------------------------------------------------------------------------

	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style

	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// -------------------------------------------------------------------------
	// Scrollbar and progress
	// -------------------------------------------------------------------------

	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	TileBgColor = t.TileBg
	SelectionBgColor = t.SelectionBg
	LikedColor = t.LikedFg
	ModalBgColor = t.ModalBg
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Hint = lipgloss.NewStyle().Foreground(Dim)

	TabActive = lipgloss.NewStyle().Foreground(Primary).Bold(true).Underline(true).Padding(0, 1)
	TabInactive = lipgloss.NewStyle().Foreground(Muted).Padding(0, 1)
	TabSeparator = lipgloss.NewStyle().Foreground(Dim)

	Tile = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Dim).
		Padding(0, 1)
	TileSelected = Tile.
		BorderForeground(Primary).
		Background(SelectionBgColor)
	TileTitle = lipgloss.NewStyle().Bold(true)
	TileArtist = lipgloss.NewStyle().Foreground(Secondary)
	TileMeta = lipgloss.NewStyle().Foreground(Muted)

	Row = lipgloss.NewStyle().PaddingLeft(1)
	RowSelected = Row.Background(SelectionBgColor).Bold(true)
	RowNumber = lipgloss.NewStyle().Foreground(Muted)
	RowArtist = lipgloss.NewStyle().Foreground(Secondary)
	RowLength = lipgloss.NewStyle().Foreground(Muted)
	Liked = lipgloss.NewStyle().Foreground(LikedColor)

	GroupHeader = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	GroupHeaderSelected = GroupHeader.Background(SelectionBgColor)
	GroupCaret = lipgloss.NewStyle().Foreground(Secondary)

	AlbumTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	AlbumMeta = lipgloss.NewStyle().Foreground(Muted)
	AlbumDivide = lipgloss.NewStyle().Foreground(Border)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	StatusKey = lipgloss.NewStyle().Foreground(Muted)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)
	WindowOn = lipgloss.NewStyle().Foreground(Success).Bold(true)
	WindowOff = lipgloss.NewStyle().Foreground(Muted)
	WindowDisabled = lipgloss.NewStyle().Foreground(Warning).Bold(true)

	FilterPrompt = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	FilterMatch = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	SpinnerStyle = lipgloss.NewStyle().Foreground(Primary)

	ModalBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Background(ModalBgColor).
		Padding(0, 1)
	ModalTitle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)

	ProgressFilled = lipgloss.NewStyle().Foreground(Primary)
	ProgressEmpty = lipgloss.NewStyle().Foreground(Dim)
}

// ProgressBar renders a fill bar like ██████░░░░ for frac in [0,1].
func ProgressBar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac = min(max(frac, 0), 1)
	filled := int(frac * float64(width))
	return ProgressFilled.Render(strings.Repeat("█", filled)) +
		ProgressEmpty.Render(strings.Repeat("░", width-filled))
}
