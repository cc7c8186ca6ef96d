package board

const (
	BoardCols = 12
	BoardRows = 9
	ScoreCols = 18
	ScoreRows = 10

	// borderAllowance reserves one unit on each side of a grid for its border.
	borderAllowance = 2
)

// Region is a rectangle positioned relative to the top left of the viewport.
type Region struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Layout holds the derived geometry for the board and score panels. It is never edited
// directly, only produced by ComputeLayout.
type Layout struct {
	ViewportWidth  int
	Board          Region
	Score          Region
	BoardCellWidth int
	// ScoreCellWidth doubles as the height of every score row.
	ScoreCellWidth int
}

// ComputeLayout splits the viewport in half and fits the board grid into the left half and
// the score grid into the right half.
func ComputeLayout(viewportWidth int) Layout {
	half := max(viewportWidth, 0) / 2
	boardCell := cellWidth(half, BoardCols)
	scoreCell := cellWidth(half, ScoreCols)

	return Layout{
		ViewportWidth: viewportWidth,
		Board: Region{
			Left:   0,
			Top:    0,
			Width:  boardCell*BoardCols + borderAllowance,
			Height: boardCell*BoardRows + borderAllowance,
		},
		Score: Region{
			Left:   half,
			Top:    0,
			Width:  scoreCell*ScoreCols + borderAllowance,
			Height: scoreCell*ScoreRows + borderAllowance,
		},
		BoardCellWidth: boardCell,
		ScoreCellWidth: scoreCell,
	}
}

func cellWidth(available int, columns int) int {
	inner := available - borderAllowance
	if inner <= 0 {
		return 0
	}

	return inner / columns
}
