package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Next  key.Binding
	Prev  key.Binding

	// Search screen
	RemoveRecent    key.Binding
	PreferredSeason key.Binding
	PinnedSeason    key.Binding
	CopyID          key.Binding

	// Seasons screen
	Pin   key.Binding
	Unpin key.Binding

	// Episodes screen
	Filter     key.Binding
	NextSeason key.Binding

	// Episode screen
	CopyURL key.Binding

	// Global
	Refresh key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next episode"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous episode"),
		),

		// Search screen
		RemoveRecent: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "remove from recent"),
		),
		PreferredSeason: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "preferred season"),
		),
		PinnedSeason: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "pinned season"),
		),
		CopyID: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy TMDB id"),
		),

		// Seasons screen
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin season"),
		),
		Unpin: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unpin"),
		),

		// Episodes screen
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		NextSeason: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next season"),
		),

		// Episode screen
		CopyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy url"),
		),

		// Global
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
	}
}
