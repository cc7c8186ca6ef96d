// Package pages contains one model per full screen page. Only the visible page receives
// keyboard and mouse input, every page receives all other messages.
package pages

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/board-tui/internal/ui/model"
	"github.com/leighmacdonald/board-tui/internal/ui/styles"
)

type Connecting struct {
	spinner   spinner.Model
	serverURL string
}

func NewConnecting(serverURL string) *Connecting {
	return &Connecting{
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		serverURL: serverURL,
	}
}

func (m *Connecting) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Connecting) Update(msg tea.Msg) tea.Cmd {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)

		return cmd
	}

	return nil
}

func (m *Connecting) Render(state model.ViewState) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.PageTitle.Render("Connecting"),
		fmt.Sprintf("%s %s", m.spinner.View(), m.serverURL))

	return lipgloss.Place(state.Width, state.Content, lipgloss.Center, lipgloss.Center, content)
}
