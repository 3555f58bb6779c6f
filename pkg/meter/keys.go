package meter

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	ToggleVisibility key.Binding
	Copy             key.Binding
	Clear            key.Binding
	ToggleHelp       key.Binding
	Quit             key.Binding
}

var defaultKeys = keyMap{
	ToggleVisibility: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "show/hide"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "copy"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "clear"),
	),
	ToggleHelp: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("F1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// shortHelp lists the bindings shown in the footer.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.ToggleVisibility, k.Copy, k.Clear, k.ToggleHelp, k.Quit}
}

// keyMatches checks if a key message matches a binding.
func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if msg.String() == k {
			return true
		}
	}
	return false
}
