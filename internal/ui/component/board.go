package component

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/board-tui/internal/board"
	"github.com/leighmacdonald/board-tui/internal/ui/styles"
	"github.com/muesli/reflow/truncate"
)

// TooNarrowMessage replaces a region whose cells would be zero columns wide.
const TooNarrowMessage = "Terminal too narrow"

// RowLines converts a height in board units into terminal lines, never less than one.
func RowLines(height int, aspect int) int {
	if aspect < 1 {
		aspect = 1
	}

	return max(1, height/aspect)
}

// RenderBoard paints the board region. Each cell is as wide as the layouts cell width and its
// colour is derived from the cell state.
func RenderBoard(gameBoard *board.Board, aspect int) string {
	layout := gameBoard.Layout()
	if layout.BoardCellWidth == 0 {
		return styles.InfoMessage.Render(TooNarrowMessage)
	}

	lines := RowLines(layout.BoardCellWidth, aspect)
	rows := make([]string, board.BoardRows)

	for row := range board.BoardRows {
		cells := gameBoard.Row(row)
		rendered := make([]string, len(cells))
		for idx, cell := range cells {
			rendered[idx] = styles.CellStyle(cell.State).
				Width(layout.BoardCellWidth).
				Height(lines).
				Render(cell.Content)
		}

		rows[row] = lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	return styles.ContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderScores paints the score sheet, one block per value, sized the same way as the board.
func RenderScores(gameBoard *board.Board, aspect int) string {
	layout := gameBoard.Layout()
	if layout.ScoreCellWidth == 0 {
		return styles.InfoMessage.Render(TooNarrowMessage)
	}

	rows := make([]string, board.ScoreRows)

	for idx := range board.ScoreRows {
		score, _ := gameBoard.ScoreRow(idx)

		style := styles.ScoreRowEven
		if idx%2 == 1 {
			style = styles.ScoreRowOdd
		}

		style = style.Width(layout.ScoreCellWidth).Height(RowLines(score.Height, aspect))
		cells := make([]string, len(score.Cells))
		for col, cell := range score.Cells {
			cells[col] = style.Render(scoreValue(cell, layout.ScoreCellWidth))
		}

		rows[idx] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}

	return styles.ContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func scoreValue(cell board.ScoreCell, width int) string {
	if !cell.Set {
		return ""
	}

	return truncate.String(strconv.Itoa(cell.Value), uint(max(width, 0))) //nolint:gosec
}
