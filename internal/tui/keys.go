package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Focus key.Binding // Cycle the focused pane
	Today key.Binding // Scroll the timeline to today

	// View
	Zoom       key.Binding
	ToggleMode key.Binding // Tasks <-> projects
	Refresh    key.Binding
	Help       key.Binding

	// Filters
	Project        key.Binding
	Responsible    key.Binding
	Classification key.Binding
	Sector         key.Binding
	ResetFilters   key.Binding
	Legend         key.Binding // 0 = All, 1..n = legend entry

	// Editing
	Edit      key.Binding
	Submit    key.Binding
	NextField key.Binding

	// General
	Quit   key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "earlier"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "later"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus pane"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Zoom: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "tasks/projects"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Project: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "project"),
		),
		Responsible: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "responsible"),
		),
		Classification: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "classification"),
		),
		Sector: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sector"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		Legend: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "status"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit dates"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "up", "down"),
			key.WithHelp("tab", "next field"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Zoom, k.ToggleMode, k.Legend, k.Edit, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Focus, k.Today},                    // Navigation
		{k.Zoom, k.ToggleMode, k.Refresh},                                     // View
		{k.Project, k.Responsible, k.Classification, k.Sector, k.ResetFilters}, // Filters
		{k.Legend, k.Edit, k.Help, k.Quit},                                    // Status & general
	}
}

// FormHelp returns the keybindings of the edit form.
func (k KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.Escape}
}
