package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings. Grid navigation and
// filtering live in components.GridKeys.
type KeyMap struct {
	Quit          key.Binding
	Help          key.Binding
	Search        key.Binding
	SwitchPane    key.Binding
	ToggleSidebar key.Binding
	ThemeMenu     key.Binding
	Trailer       key.Binding
	OpenTrailer   key.Binding
	Refresh       key.Binding
	NextPage      key.Binding
	PrevPage      key.Binding
	Category      key.Binding
	Similar       key.Binding
	Close         key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Search: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "search"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sidebar"),
		),
		ThemeMenu: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("t", "enter"),
			key.WithHelp("t", "trailer"),
		),
		OpenTrailer: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in player"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev page"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "movies/tv"),
		),
		Similar: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more like this"),
		),
		Close: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "close"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// shortHelp and fullHelp feed the footer
var (
	shortHelp = []key.Binding{Keys.Search, Keys.Trailer, Keys.ThemeMenu, Keys.ToggleSidebar, Keys.Help, Keys.Quit}
	fullHelp  = []key.Binding{Keys.PrevPage, Keys.NextPage, Keys.Category, Keys.Similar, Keys.Refresh, Keys.SwitchPane, Keys.Help}
)
