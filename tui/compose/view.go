package compose

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cogciprocate/shoutit/tui/common"
)

const buttonLabel = "Shout"

// View renders the field above the button.
func (m Model) View() string {
	field := common.FieldStyle
	button := common.ButtonStyle
	if m.focus == buttonFocus {
		button = common.ButtonFocusedStyle
	} else {
		field = common.FieldFocusedStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		field.Render(m.input.View()),
		button.Render(buttonLabel),
	)
}
