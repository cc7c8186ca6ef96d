package bus

import "fmt"

// Topic names a channel on the bus.
type Topic string

const (
	TopicBoard          Topic = "board"
	TopicBoardSet       Topic = "board-set"
	TopicScoreSheetCell Topic = "score-sheet-cell"
	TopicScoreSheet     Topic = "score-sheet"
	TopicFatalError     Topic = "fatal-error"
	TopicConnected      Topic = "network-connected"
	TopicDisconnected   Topic = "network-disconnected"
)

// Error codes carried by FatalError.
const (
	ErrorNotUsingLatestVersion = "NotUsingLatestVersion"
	ErrorInvalidUsername       = "InvalidUsername"
	ErrorUsernameAlreadyInUse  = "UsernameAlreadyInUse"
)

// Message is the tagged variant of everything that may travel over the bus.
type Message interface {
	Topic() Topic
}

// CellUpdate sets the visual state of a single board cell.
type CellUpdate struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Type string `json:"type"`
}

func (CellUpdate) Topic() Topic { return TopicBoard }

func (c CellUpdate) String() string {
	return fmt.Sprintf("cell(%d,%d)=%s", c.Row, c.Col, c.Type)
}

// BoardSet replaces the state of many cells at once. Cells is row major, entries outside the
// board are ignored.
type BoardSet struct {
	Cells [][]string `json:"cells"`
}

func (BoardSet) Topic() Topic { return TopicBoardSet }

// ScoreSheetCell sets a single value of the score sheet, addressed by row and column index.
type ScoreSheetCell struct {
	Row   int `json:"row"`
	Index int `json:"index"`
	Value int `json:"value"`
}

func (ScoreSheetCell) Topic() Topic { return TopicScoreSheetCell }

// ScoreSheet sets many score sheet values at once. Rows is row major, entries outside the sheet
// are ignored.
type ScoreSheet struct {
	Rows [][]int `json:"rows"`
}

func (ScoreSheet) Topic() Topic { return TopicScoreSheet }

// FatalError is sent by the server when it refuses something the client did.
type FatalError struct {
	Code string `json:"code"`
}

func (FatalError) Topic() Topic { return TopicFatalError }

// IsLoginError reports whether the server rejected the submitted username.
func (e FatalError) IsLoginError() bool {
	return e.Code == ErrorInvalidUsername || e.Code == ErrorUsernameAlreadyInUse
}

func (e FatalError) Description() string {
	switch e.Code {
	case ErrorInvalidUsername:
		return "Invalid username"
	case ErrorUsernameAlreadyInUse:
		return "Username already in use"
	case ErrorNotUsingLatestVersion:
		return "Client is out of date"
	default:
		return "Server error: " + e.Code
	}
}

type Connected struct{}

func (Connected) Topic() Topic { return TopicConnected }

// Disconnected is published when the connection is lost or could not be established. Err is
// nil for a clean close.
type Disconnected struct {
	Err error
}

func (Disconnected) Topic() Topic { return TopicDisconnected }
