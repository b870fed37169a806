package main

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap describes the run pane's keybindings via bubbles/key, the same
// package the teacher used for its own dashboard/launcher bindings, so the
// help footer (bubbles/help) can render them without the pane hand-rolling
// its own help string.
type keyMap struct {
	Quit key.Binding
	Copy key.Binding
}

// ShortHelp satisfies help.KeyMap for the single-line footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Quit}
}

// FullHelp satisfies help.KeyMap; the run pane has no expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Copy, k.Quit}}
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy visible frame"),
	),
}
