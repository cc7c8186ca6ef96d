// Package board holds the board and score panel state that is painted by the ui. All cells
// are created up front and addressed by index, updates only ever mutate existing cells.
package board

import (
	"log/slog"
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/leighmacdonald/board-tui/internal/bus"
)

// EmptyContent is shown in cells that have not received a state yet.
const EmptyContent = "·"

// Cell is one square of the board grid.
type Cell struct {
	Row     int
	Col     int
	State   string
	Content string
}

// ColumnClass returns the column index classification that every cell always keeps.
func (c Cell) ColumnClass() string {
	return "col-" + strconv.Itoa(c.Col)
}

// Classes returns the full classification of the cell, the column class followed by the
// current state, if any.
func (c Cell) Classes() []string {
	if c.State == "" {
		return []string{c.ColumnClass()}
	}

	return []string{c.ColumnClass(), c.State}
}

// ScoreCell is one value of the score sheet. Set is false until the server sends a value.
type ScoreCell struct {
	Value int
	Set   bool
}

// ScoreRow is one line of the score sheet.
type ScoreRow struct {
	Cells  []ScoreCell
	Height int
}

type Board struct {
	rows   [][]*Cell
	scores []*ScoreRow
	layout Layout
}

func New() *Board {
	rows := make([][]*Cell, BoardRows)
	for row := range rows {
		rows[row] = make([]*Cell, BoardCols)
		for col := range rows[row] {
			rows[row][col] = &Cell{Row: row, Col: col, Content: EmptyContent}
		}
	}

	scores := make([]*ScoreRow, ScoreRows)
	for idx := range scores {
		scores[idx] = &ScoreRow{Cells: make([]ScoreCell, ScoreCols)}
	}

	gameBoard := &Board{rows: rows, scores: scores}
	gameBoard.RecomputeLayout(0)

	return gameBoard
}

// RecomputeLayout derives both regions from the viewport width and resizes every score row.
func (b *Board) RecomputeLayout(viewportWidth int) Layout {
	b.layout = ComputeLayout(viewportWidth)
	for _, score := range b.scores {
		score.Height = b.layout.ScoreCellWidth
	}

	return b.layout
}

func (b *Board) Layout() Layout {
	return b.layout
}

func (b *Board) cell(row int, col int) *Cell {
	if row < 0 || row >= len(b.rows) {
		return nil
	}

	if col < 0 || col >= len(b.rows[row]) {
		return nil
	}

	return b.rows[row][col]
}

// ApplyCellUpdate replaces the state of the cell at row, col and clears its contents. Coordinates
// outside the grid are ignored.
func (b *Board) ApplyCellUpdate(row int, col int, cellType string) {
	target := b.cell(row, col)
	if target == nil {
		slog.Debug("Ignoring cell update outside board", slog.Int("row", row), slog.Int("col", col))

		return
	}

	target.State = cellType
	target.Content = ""
}

// Cell returns a copy of the cell at row, col.
func (b *Board) Cell(row int, col int) (Cell, bool) {
	target := b.cell(row, col)
	if target == nil {
		return Cell{}, false
	}

	return *target, true
}

// Row returns copies of all cells within the row, left to right.
func (b *Board) Row(row int) []Cell {
	if row < 0 || row >= len(b.rows) {
		return nil
	}

	cells := make([]Cell, len(b.rows[row]))
	for idx, cell := range b.rows[row] {
		cells[idx] = *cell
	}

	return cells
}

// ApplyBoardSet applies every in range entry of cells, row major, as a cell update.
func (b *Board) ApplyBoardSet(cells [][]string) {
	for row, types := range cells {
		for col, cellType := range types {
			if b.cell(row, col) != nil {
				b.ApplyCellUpdate(row, col, cellType)
			}
		}
	}
}

// ApplyScoreSheetCell sets one score sheet value. Coordinates outside the sheet are ignored.
func (b *Board) ApplyScoreSheetCell(row int, index int, value int) {
	if row < 0 || row >= len(b.scores) || index < 0 || index >= len(b.scores[row].Cells) {
		slog.Debug("Ignoring score update outside sheet", slog.Int("row", row), slog.Int("index", index))

		return
	}

	b.scores[row].Cells[index] = ScoreCell{Value: value, Set: true}
}

// ApplyScoreSheet applies every in range entry of rows, row major.
func (b *Board) ApplyScoreSheet(rows [][]int) {
	for row, values := range rows {
		if row >= len(b.scores) {
			return
		}

		for index, value := range values {
			if index >= ScoreCols {
				break
			}

			b.ApplyScoreSheetCell(row, index, value)
		}
	}
}

func (b *Board) ScoreRow(row int) (ScoreRow, bool) {
	if row < 0 || row >= len(b.scores) {
		return ScoreRow{}, false
	}

	score := *b.scores[row]
	score.Cells = slices.Clone(score.Cells)

	return score, true
}

// Subscribe attaches the board to the board and score sheet topics. The returned func detaches it.
func (b *Board) Subscribe(events *bus.Bus) func() {
	detach := []func(){
		bus.On(events, func(update bus.CellUpdate) {
			b.ApplyCellUpdate(update.Row, update.Col, update.Type)
		}),
		bus.On(events, func(update bus.BoardSet) {
			b.ApplyBoardSet(update.Cells)
		}),
		bus.On(events, func(update bus.ScoreSheetCell) {
			b.ApplyScoreSheetCell(update.Row, update.Index, update.Value)
		}),
		bus.On(events, func(update bus.ScoreSheet) {
			b.ApplyScoreSheet(update.Rows)
		}),
	}

	return func() {
		for _, fn := range detach {
			fn()
		}
	}
}
