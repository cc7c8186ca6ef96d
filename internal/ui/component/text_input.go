package component

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/board-tui/internal/ui/styles"
)

// MaxUsernameLength is the longest username the login form accepts.
const MaxUsernameLength = 32

var errUsernameInvalid = errors.New("invalid username")

type InputValidator interface {
	Validate(string) error
}

func NewValidatingTextInputModel(label string, value string, placeholder string, charLimit int, validators ...InputValidator) *ValidatingTextInputModel {
	input := NewTextInputModel(value, placeholder, charLimit)

	if len(validators) > 0 {
		input.Validate = func(s string) error {
			for _, validator := range validators {
				if err := validator.Validate(s); err != nil {
					return err
				}
			}

			return nil
		}
	}

	return &ValidatingTextInputModel{Input: input, Label: label, validators: validators}
}

type ValidatingTextInputModel struct {
	Label      string
	Input      textinput.Model
	validators []InputValidator
}

func (m *ValidatingTextInputModel) Init() tea.Cmd {
	return nil
}

func (m *ValidatingTextInputModel) Update(msg tea.Msg) (*ValidatingTextInputModel, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	return m, cmd
}

// Check runs the validators against the current value and records the result on the input.
func (m *ValidatingTextInputModel) Check() error {
	value := m.Input.Value()
	for _, validator := range m.validators {
		if err := validator.Validate(value); err != nil {
			m.Input.Err = err

			return err
		}
	}

	m.Input.Err = nil

	return nil
}

func (m *ValidatingTextInputModel) View() string {
	var errRow string
	if m.Input.Err != nil {
		errRow = lipgloss.NewStyle().Foreground(styles.Red).Render("Validation Error: " + m.Input.Err.Error())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpStyle.Render(m.Label+": "),
		lipgloss.JoinVertical(lipgloss.Top, m.Input.View(), errRow))
}

func (m *ValidatingTextInputModel) Focus() tea.Cmd {
	m.Input.PromptStyle = styles.FocusedStyle
	m.Input.TextStyle = styles.FocusedStyle

	return m.Input.Focus()
}

func (m *ValidatingTextInputModel) Blur() {
	m.Input.PromptStyle = styles.NoStyle
	m.Input.TextStyle = styles.NoStyle
	m.Input.Blur()
}

type UsernameValidator struct{}

func (v UsernameValidator) Validate(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%w: Cannot be empty", errUsernameInvalid)
	}

	if utf8.RuneCountInString(trimmed) > MaxUsernameLength {
		return fmt.Errorf("%w: Cannot be longer than %d characters", errUsernameInvalid, MaxUsernameLength)
	}

	for _, char := range trimmed {
		if !unicode.IsPrint(char) {
			return fmt.Errorf("%w: Contains unprintable characters", errUsernameInvalid)
		}
	}

	return nil
}
