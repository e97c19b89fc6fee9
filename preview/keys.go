package preview

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the preview key bindings.
type KeyMap struct {
	Quit      key.Binding
	RowUp     key.Binding
	RowDown   key.Binding
	DayBack   key.Binding
	DayAhead  key.Binding
	ResetView key.Binding
	Help      key.Binding
}

var Keys = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	DayBack: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "one day back"),
	),
	DayAhead: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "one day ahead"),
	),
	ResetView: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.RowUp, k.RowDown, k.DayBack, k.DayAhead, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RowUp, k.RowDown},
		{k.DayBack, k.DayAhead, k.ResetView},
		{k.Help, k.Quit},
	}
}
