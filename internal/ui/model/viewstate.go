package model

import (
	"github.com/leighmacdonald/board-tui/internal/board"
	"github.com/leighmacdonald/board-tui/internal/view"
)

// ViewState tracks the common ui states that are shared between many models.
type ViewState struct {
	// Page is the page the controller currently shows.
	Page view.Page
	// Layout is the board geometry derived from Width.
	Layout board.Layout
	// CellAspect is how many board units are drawn per terminal line.
	CellAspect int

	// Height and Width are the terminal dimensions, Content is the height left over for
	// the page once the footer is drawn.
	Height  int
	Width   int
	Content int
}
