package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the shout screen's key bindings.
type KeyMap struct {
	Quit      key.Binding
	Submit    key.Binding // enter — press the focused control
	FocusNext key.Binding // tab — field <-> button
	FocusPrev key.Binding
	Editor    key.Binding // ctrl+e — compose via $EDITOR
	Copy      key.Binding // ctrl+y — copy last shout
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "shout"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		Editor: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "$EDITOR"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy last"),
		),
	}
}

// HelpLine renders the bindings that have help text, separated by bullets.
func (k KeyMap) HelpLine() string {
	var out string
	for _, b := range []key.Binding{k.Submit, k.FocusNext, k.Editor, k.Copy, k.Quit} {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += " • "
		}
		out += h.Key + ": " + h.Desc
	}
	return out
}
