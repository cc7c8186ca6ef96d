package pages

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/board-tui/internal/ui/command"
	"github.com/leighmacdonald/board-tui/internal/ui/component"
	"github.com/leighmacdonald/board-tui/internal/ui/input"
	"github.com/leighmacdonald/board-tui/internal/ui/model"
	"github.com/leighmacdonald/board-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

type loginFocus int

const (
	focusUsername loginFocus = iota
	focusSubmit
)

// Login is the username form. Submitting it emits a single command.LoginSubmitMsg.
type Login struct {
	username *component.ValidatingTextInputModel
	focus    loginFocus
	zoneID   string
	recent   []string
}

func NewLogin(username string) *Login {
	field := component.NewValidatingTextInputModel("Username", username, "player name",
		component.MaxUsernameLength, component.UsernameValidator{})
	field.Focus()

	return &Login{
		username: field,
		focus:    focusUsername,
		zoneID:   zone.NewPrefix(),
	}
}

func (m *Login) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Login) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case command.UsernameMsg:
		if m.username.Input.Value() == "" && msg.Username != "" {
			m.username.Input.SetValue(msg.Username)
			m.username.Input.CursorEnd()
		}

		m.recent = msg.Recent

		return nil
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return nil
		}

		if zone.Get(m.zoneID + "submit").InBounds(msg) {
			return m.submit()
		}

		return nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, input.Default.Accept):
			return m.submit()
		case key.Matches(msg, input.Default.Next):
			return m.toggleFocus()
		}

		if m.focus != focusUsername {
			return nil
		}
	}

	_, cmd := m.username.Update(msg)

	return cmd
}

func (m *Login) toggleFocus() tea.Cmd {
	if m.focus == focusUsername {
		m.focus = focusSubmit
		m.username.Blur()

		return nil
	}

	m.focus = focusUsername

	return m.username.Focus()
}

func (m *Login) submit() tea.Cmd {
	if err := m.username.Check(); err != nil {
		return command.SetStatusMessage(err.Error(), true)
	}

	return command.SubmitLogin(strings.TrimSpace(m.username.Input.Value()))
}

func (m *Login) Render(state model.ViewState) string {
	button := styles.BlurredSubmitButton
	if m.focus == focusSubmit {
		button = styles.FocusedSubmitButton
	}

	rows := []string{styles.PageTitle.Render("Login"), m.username.View()}
	if len(m.recent) > 0 {
		rows = append(rows, styles.HelpStyle.Render("Recent: "+strings.Join(m.recent, ", ")))
	}

	rows = append(rows, "", zone.Mark(m.zoneID+"submit", button))
	content := lipgloss.JoinVertical(lipgloss.Center, rows...)

	return lipgloss.Place(state.Width, state.Content, lipgloss.Center, lipgloss.Center, content)
}
