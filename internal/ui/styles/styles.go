package styles

import (
	"fmt"
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	Black       = lipgloss.Color("#111111")
	Gray        = lipgloss.Color("#3e3e3e")
	GrayDark    = lipgloss.Color("#2f3030")
	GrayDarkAlt = lipgloss.Color("#0f0f0f")
	White       = lipgloss.Color("#cccccc")
	Whiter      = lipgloss.Color("#aaaaaa")

	Red = lipgloss.Color("#B8383B")
	Blu = lipgloss.Color("#5885A2")

	ColourStrange = lipgloss.Color("#cf6a32")
	ColourLimited = lipgloss.Color("#ffd700")
	ColourGenuine = lipgloss.Color("#4d7455")
	ColourUnusual = lipgloss.Color("#8650ac")
	ColourVintage = lipgloss.Color("#476291")

	ContainerBorder = lipgloss.NormalBorder()
	ContainerStyle  = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Gray)

	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Center)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(Black)
	CursorStyle  = FocusedStyle
	NoStyle      = lipgloss.NewStyle()
	HelpStyle    = BlurredStyle

	FocusedSubmitButton = lipgloss.NewStyle().Foreground(Accent).Render("[ Login ]")
	BlurredSubmitButton = fmt.Sprintf("[ %s ]", BlurredStyle.Render("Login"))

	PageTitle   = lipgloss.NewStyle().Foreground(ColourUnusual).Bold(true).Padding(1)
	InfoMessage = lipgloss.NewStyle().Align(lipgloss.Center).Padding(1)
	ErrorDetail = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Center)
	Spinner     = lipgloss.NewStyle().Foreground(Accent)

	CellEmpty = lipgloss.NewStyle().Foreground(Gray).Background(GrayDarkAlt).Align(lipgloss.Center)
	// cellPalette is indexed by a hash of the cell state so every state keeps a stable colour
	// without the client knowing the states in advance.
	cellPalette = []lipgloss.Color{Red, Blu, ColourStrange, ColourLimited, ColourGenuine, ColourUnusual, ColourVintage, Accent}

	ScoreRowEven = lipgloss.NewStyle().Background(GrayDark).Foreground(White).Align(lipgloss.Center)
	ScoreRowOdd  = lipgloss.NewStyle().Background(GrayDarkAlt).Foreground(Whiter).Align(lipgloss.Center)

	StatusError   = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage = lipgloss.NewStyle().Foreground(ColourGenuine).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusServer  = lipgloss.NewStyle().Foreground(ColourStrange).PaddingRight(2).PaddingLeft(1).Bold(true)
	StatusPage    = lipgloss.NewStyle().Foreground(ColourGenuine).PaddingRight(2).PaddingLeft(1).Bold(true)
	StatusUptime  = lipgloss.NewStyle().Foreground(Whiter).PaddingRight(2)
	StatusHelp    = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center)
	StatusVersion = lipgloss.NewStyle().Foreground(ColourGenuine).Bold(true).Align(lipgloss.Center).PaddingRight(1)
)

// CellStyle returns the style used to paint a board cell in the given state.
func CellStyle(state string) lipgloss.Style {
	if state == "" {
		return CellEmpty
	}

	hash := fnv.New32a()
	_, _ = hash.Write([]byte(state))
	colour := cellPalette[hash.Sum32()%uint32(len(cellPalette))]

	return lipgloss.NewStyle().Background(colour).Foreground(Black).Align(lipgloss.Center)
}
