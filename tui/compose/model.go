package compose

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cogciprocate/shoutit/tui/common"
)

// --- Focus ---

type focus int

const (
	fieldFocus focus = iota
	buttonFocus
)

// --- Messages ---

// SubmitMsg is sent when the user presses the shout button. Text is what the
// field held at that moment; the field is already cleared.
type SubmitMsg struct {
	Text string
}

// --- Model ---

// Model is the shout form: one text field and one button.
type Model struct {
	input textinput.Model
	focus focus
	keys  common.KeyMap
}

// New creates a form with the field focused.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "What do you want to shout?"
	ti.Prompt = ""
	ti.Width = 48
	ti.Focus()

	return Model{
		input: ti,
		focus: fieldFocus,
		keys:  common.DefaultKeyMap(),
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Value returns the current field text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the field text and moves the cursor to the end.
func (m Model) SetValue(s string) Model {
	m.input.SetValue(s)
	m.input.CursorEnd()
	return m
}

// SetWidth fits the field into a terminal of the given width.
func (m Model) SetWidth(width int) Model {
	w := width - 6 // border + padding
	if w < 10 {
		w = 10
	}
	m.input.Width = w
	return m
}

// ButtonFocused reports whether the button, not the field, has focus.
func (m Model) ButtonFocused() bool {
	return m.focus == buttonFocus
}

// Update handles key presses for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()

		case key.Matches(msg, m.keys.FocusNext), key.Matches(msg, m.keys.FocusPrev):
			return m.toggleFocus()
		}

		if m.focus == buttonFocus {
			// The button only reacts to submit and focus keys.
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit reads and clears the field before anything goes on the wire.
func (m Model) submit() (Model, tea.Cmd) {
	text := m.input.Value()
	m.input.Reset()
	return m, func() tea.Msg { return SubmitMsg{Text: text} }
}

func (m Model) toggleFocus() (Model, tea.Cmd) {
	if m.focus == fieldFocus {
		m.focus = buttonFocus
		m.input.Blur()
		return m, nil
	}
	m.focus = fieldFocus
	return m, m.input.Focus()
}
