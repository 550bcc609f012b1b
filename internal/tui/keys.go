package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the week view.
type KeyMap struct {
	Quit       key.Binding
	NextWeek   key.Binding
	PrevWeek   key.Binding
	NextDay    key.Binding
	PrevDay    key.Binding
	NextPage   key.Binding
	PrevPage   key.Binding
	Up         key.Binding
	Down       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Open       key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Reload     key.Binding
	Back       key.Binding
	Confirm    key.Binding
	Save       key.Binding
	NextField  key.Binding
	PrevField  key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	NextWeek: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next week"),
	),
	PrevWeek: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "previous week"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next day"),
	),
	PrevDay: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "prev day"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next overlap"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev overlap"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "prev event"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "next event"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "scroll down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	New: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "new event"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "enter", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "prev field"),
	),
}

// ShortHelp implements help.KeyMap for the week view footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevWeek, k.NextWeek, k.PrevDay, k.NextDay, k.NextPage, k.Open, k.New, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevWeek, k.NextWeek, k.PrevDay, k.NextDay},
		{k.NextPage, k.PrevPage, k.Up, k.Down},
		{k.Open, k.New, k.Edit, k.Delete},
		{k.ScrollUp, k.ScrollDown, k.Reload, k.Quit},
	}
}
