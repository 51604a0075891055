package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings. The key itself is the left mouse
// button, since terminals do not report key releases.
type KeyMap struct {
	Reset  key.Binding
	Delete key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Reset: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space/right-click", "clear transcript"),
	),
	Delete: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("bksp", "delete last"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Reset, k.Delete},
		{k.Help, k.Quit},
	}
}

// withTranscript disables bindings that need a transcript.
func (k KeyMap) withTranscript(enabled bool) KeyMap {
	k.Reset.SetEnabled(enabled)
	k.Delete.SetEnabled(enabled)
	return k
}
