package app

import "charm.land/bubbles/v2/key"

// KeyMap defines all global keybindings. List navigation (arrows, hjkl,
// paging) belongs to each list's window controller.
type KeyMap struct {
	// Global
	Quit   key.Binding
	Cancel key.Binding
	Escape key.Binding
	Help   key.Binding
	Debug  key.Binding
	Theme  key.Binding
	Reload key.Binding

	// Tabs
	NextTab key.Binding
	PrevTab key.Binding
	Browse  key.Binding
	Liked   key.Binding
	Gallery key.Binding

	// Lists
	Open   key.Binding
	Filter key.Binding
	Copy   key.Binding
	Like   key.Binding
	Expand key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back / clear filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Debug: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "window debug"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Browse: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "browse"),
		),
		Liked: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "liked"),
		),
		Gallery: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "gallery"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open / expand"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy share link"),
		),
		Like: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "like / unlike"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "expand all"),
		),
	}
}
