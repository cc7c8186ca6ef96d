package component

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/leighmacdonald/board-tui/internal/ui/styles"
)

func NewTextInputModel(value string, placeholder string, charLimit int) textinput.Model {
	input := textinput.New()
	input.Cursor.Style = styles.CursorStyle
	input.SetValue(value)
	input.CharLimit = charLimit
	input.Placeholder = placeholder
	input.PromptStyle = styles.NoStyle
	input.TextStyle = styles.NoStyle

	return input
}
