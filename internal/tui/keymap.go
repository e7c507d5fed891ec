package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Filters
	Carrier   key.Binding
	Prefix    key.Binding
	Lucky     key.Binding
	ValidOnly key.Binding
	Avoid     key.Binding
	Require   key.Binding
	Reset     key.Binding

	// Text input
	Confirm key.Binding
	Cancel  key.Binding

	// Application
	Export    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp/Ctrl+B", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn/Ctrl+F", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "go to start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "go to end"),
		),

		// Filters
		Carrier: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "carrier"),
		),
		Prefix: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prefix"),
		),
		Lucky: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "lucky star"),
		),
		ValidOnly: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "buy only"),
		),
		Avoid: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "avoid digits"),
		),
		Require: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "require digits"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset filters"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),

		// Application
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export xlsx"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Carrier, k.Prefix, k.Lucky, k.ValidOnly, k.Export, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Carrier, k.Prefix, k.Lucky, k.ValidOnly},
		{k.Avoid, k.Require, k.Reset},
		{k.Export, k.Help, k.Quit},
	}
}
