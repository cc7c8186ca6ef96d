package component

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/leighmacdonald/board-tui/internal/ui/command"
	"github.com/leighmacdonald/board-tui/internal/ui/input"
	"github.com/leighmacdonald/board-tui/internal/ui/model"
	"github.com/leighmacdonald/board-tui/internal/ui/styles"
	"github.com/leighmacdonald/board-tui/internal/view"
)

type StatusBarModel struct {
	help        help.Model
	serverURL   string
	version     string
	connectedAt time.Time
	statusMsg   string
	statusError bool
}

func NewStatusBarModel(version string, serverURL string) *StatusBarModel {
	return &StatusBarModel{help: help.New(), version: version, serverURL: serverURL}
}

func (m *StatusBarModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case command.StatusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return command.ClearErrorAfter(command.ClearMessageTimeout)
	case command.ClearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	case bus.Connected:
		m.connectedAt = time.Now()
	case bus.Disconnected:
		m.connectedAt = time.Time{}
	}

	return nil
}

func (m *StatusBarModel) Render(state model.ViewState) string {
	args := []string{
		styles.StatusVersion.Render(m.version),
		styles.StatusPage.Render(string(state.Page)),
		styles.StatusServer.Render(m.serverURL),
	}

	if !m.connectedAt.IsZero() {
		args = append(args, styles.StatusUptime.Render("connected "+humanize.Time(m.connectedAt)))
	}

	if m.statusMsg != "" {
		if m.statusError {
			args = append(args, styles.StatusError.Render(m.statusMsg))
		} else {
			args = append(args, styles.StatusMessage.Render(m.statusMsg))
		}
	}

	args = append(args, styles.StatusHelp.Render(m.help.ShortHelpView(pageBindings(state.Page))))

	return lipgloss.NewStyle().Width(state.Width).Render(lipgloss.JoinHorizontal(lipgloss.Top, args...))
}

func pageBindings(page view.Page) []key.Binding {
	switch page { //nolint:exhaustive
	case view.PageLogin:
		return []key.Binding{input.Default.Accept, input.Default.Next, input.Default.Quit}
	case view.PageDisconnected:
		return []key.Binding{input.Default.Reconnect, input.Default.QuitShort}
	default:
		return []key.Binding{input.Default.QuitShort}
	}
}
