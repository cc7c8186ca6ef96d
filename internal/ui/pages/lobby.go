package pages

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/board-tui/internal/board"
	"github.com/leighmacdonald/board-tui/internal/ui/component"
	"github.com/leighmacdonald/board-tui/internal/ui/model"
)

// Lobby draws the board region with the score region to its right.
type Lobby struct {
	board *board.Board
}

func NewLobby(gameBoard *board.Board) *Lobby {
	return &Lobby{board: gameBoard}
}

func (m *Lobby) Init() tea.Cmd {
	return nil
}

func (m *Lobby) Update(_ tea.Msg) tea.Cmd {
	return nil
}

func (m *Lobby) Render(state model.ViewState) string {
	left := lipgloss.NewStyle().
		Width(max(state.Layout.Score.Left, 0)).
		Render(component.RenderBoard(m.board, state.CellAspect))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, component.RenderScores(m.board, state.CellAspect))
}
