package tui

import "github.com/charmbracelet/lipgloss"

// Garden palette
const (
	grassLight = lipgloss.Color("#4CAF50")
	grassDark  = lipgloss.Color("#388E3C")
	dirt       = lipgloss.Color("#6D4C2E")
	moleBrown  = lipgloss.Color("#8D6E63")
	labelBG    = lipgloss.Color("#E8F5E9")
	leaf       = lipgloss.Color("#2E7D32")
	sunYellow  = lipgloss.Color("#FFD700")
	alertRed   = lipgloss.Color("#B71C1C")
	dimGrey    = lipgloss.Color("#626262")
)

// Hole cell dimensions, shared by rendering and mouse hit testing
const (
	cellWidth  = 9
	cellHeight = 3
	cellGap    = 1
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(leaf).
			Padding(0, 1).
			Bold(true)

	InstructionsStyle = lipgloss.NewStyle().
				Foreground(leaf).
				Italic(true)

	ScoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1B5E20")).
			Background(labelBG).
			Padding(0, 1).
			Bold(true)

	MissStyle = lipgloss.NewStyle().
			Foreground(alertRed).
			Background(labelBG).
			Padding(0, 1).
			Bold(true)

	HoleStyle = lipgloss.NewStyle().
			Foreground(dirt).
			Background(grassLight).
			Width(cellWidth).
			Height(cellHeight).
			Align(lipgloss.Center)

	MoleStyle = HoleStyle.
			Foreground(moleBrown).
			Background(grassDark).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Background(sunYellow)

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#33691E")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(leaf).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(sunYellow).
			Padding(0, 2).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(dimGrey)

	LogPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimGrey).
			Padding(0, 1)
)
