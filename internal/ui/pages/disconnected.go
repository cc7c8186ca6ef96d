package pages

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/board-tui/internal/bus"
	"github.com/leighmacdonald/board-tui/internal/ui/model"
	"github.com/leighmacdonald/board-tui/internal/ui/styles"
)

type Disconnected struct {
	lastErr error
}

func NewDisconnected() *Disconnected {
	return &Disconnected{}
}

func (m *Disconnected) Init() tea.Cmd {
	return nil
}

func (m *Disconnected) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case bus.Disconnected:
		m.lastErr = msg.Err
	case bus.Connected:
		m.lastErr = nil
	}

	return nil
}

func (m *Disconnected) Render(state model.ViewState) string {
	rows := []string{styles.PageTitle.Render("Disconnected")}
	if m.lastErr != nil {
		rows = append(rows, styles.ErrorDetail.Render(m.lastErr.Error()))
	}

	rows = append(rows, styles.InfoMessage.Render("press r to reconnect"))

	return lipgloss.Place(state.Width, state.Content, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, rows...))
}
