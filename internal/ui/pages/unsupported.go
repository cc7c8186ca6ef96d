package pages

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/board-tui/internal/ui/model"
	"github.com/leighmacdonald/board-tui/internal/ui/styles"
)

// Unsupported is shown when the configured server cannot be reached over a websocket at all.
type Unsupported struct {
	serverURL string
}

func NewUnsupported(serverURL string) *Unsupported {
	return &Unsupported{serverURL: serverURL}
}

func (m *Unsupported) Init() tea.Cmd {
	return nil
}

func (m *Unsupported) Update(_ tea.Msg) tea.Cmd {
	return nil
}

func (m *Unsupported) Render(state model.ViewState) string {
	return lipgloss.Place(state.Width, state.Content, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			styles.PageTitle.Render("WebSockets not supported"),
			styles.ErrorDetail.Render(m.serverURL),
			styles.InfoMessage.Render("server_url must use the ws:// or wss:// scheme")))
}
