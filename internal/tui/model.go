// Package tui renders the game in the terminal and turns key presses and
// mouse clicks into whacks.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/whackamole/internal/game"
)

const (
	statusStart   = "Click the mole!"
	statusHit     = "Hit!"
	statusMiss    = "Miss!"
	statusTooSlow = "Too slow!"

	logWidth = 24
	maxLog   = 200
)

// Game is the part of the controller the model drives
type Game interface {
	Click(hole int) game.Outcome
	Rules() game.Rules
	Stop()
}

// Model is the Bubble Tea model for a single game
type Model struct {
	game   Game
	feed   *Feed
	rules  game.Rules
	logger *log.Logger

	keys     KeyMap
	help     help.Model
	progress progress.Model
	logView  viewport.Model
	logLines []string

	mole    int // hole showing a mole, -1 for none
	cursor  int
	score   int
	misses  int
	status  string
	over    bool
	summary game.Summary

	width    int
	height   int
	gridTop  int // screen row of the first grid line, set by View
	quitting bool
}

// NewModel creates a model for g. Notifications arrive through feed, which
// must be the Display the game was created with.
func NewModel(g Game, feed *Feed, logger *log.Logger) *Model {
	rules := g.Rules()
	gridWidth := rules.Cols*(cellWidth+cellGap) - cellGap

	vp := viewport.New(logWidth, rules.Rows*cellHeight)

	return &Model{
		game:     g,
		feed:     feed,
		rules:    rules,
		logger:   logger.WithPrefix("tui"),
		keys:     DefaultKeyMap(rules.Rows, rules.Cols),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(gridWidth), progress.WithoutPercentage()),
		logView:  vp,
		mole:     -1,
		status:   statusStart,
	}
}

// Init starts listening for game notifications
func (m *Model) Init() tea.Cmd {
	return m.next()
}

func (m *Model) next() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return m.feed.Next()
}

// Update handles input and game notifications
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.over {
			if hole := m.holeAt(msg.X, msg.Y); hole >= 0 {
				m.cursor = hole
				m.whack(hole)
			}
		}

	case ScoreMsg:
		m.score = msg.Score
		m.status = statusHit
		m.addLog(SuccessStyle.Render(fmt.Sprintf("Hit! score %d", msg.Score)))
		return m, m.next()

	case MissMsg:
		m.misses = msg.Misses
		if msg.Cause == game.MissTimeout {
			m.status = statusTooSlow
		} else {
			m.status = statusMiss
		}
		m.addLog(ErrorStyle.Render(fmt.Sprintf("%s (%s)", m.status, msg.Cause)))
		return m, m.next()

	case MoleShownMsg:
		m.mole = msg.Hole
		return m, m.next()

	case MoleHiddenMsg:
		if m.mole == msg.Hole {
			m.mole = -1
		}
		return m, m.next()

	case GameOverMsg:
		m.over = true
		m.summary = msg.Summary
		m.status = fmt.Sprintf("You won! Final score: %d, misses: %d", msg.Summary.Score, msg.Summary.Misses)
		m.addLog(SuccessStyle.Render("Game over"))
		m.logger.Info("Game over", "score", msg.Summary.Score, "misses", msg.Summary.Misses)
		return m, m.next()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.logger.Info("Player quit")
		m.game.Stop()
		m.quitting = true
		return m, tea.Quit
	}

	if m.over {
		if key.Matches(msg, m.keys.Whack) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	row, col := m.rules.Position(m.cursor)
	switch {
	case key.Matches(msg, m.keys.Up):
		row = max(row-1, 0)
	case key.Matches(msg, m.keys.Down):
		row = min(row+1, m.rules.Rows-1)
	case key.Matches(msg, m.keys.Left):
		col = max(col-1, 0)
	case key.Matches(msg, m.keys.Right):
		col = min(col+1, m.rules.Cols-1)
	case key.Matches(msg, m.keys.Whack):
		m.whack(m.cursor)
		return m, nil
	default:
		if hole, ok := holeForKey(msg.String(), m.rules.Rows, m.rules.Cols); ok {
			m.cursor = hole
			m.whack(hole)
		}
		return m, nil
	}
	m.cursor = m.rules.Index(row, col)
	return m, nil
}

func (m *Model) whack(hole int) {
	outcome := m.game.Click(hole)
	m.logger.Debug("Whack", "hole", hole, "outcome", outcome)
}

// holeAt maps a screen cell to a hole, or -1 when it is not over one
func (m *Model) holeAt(x, y int) int {
	if x < 0 || y < m.gridTop {
		return -1
	}
	stride := cellWidth + cellGap
	if x%stride >= cellWidth {
		return -1
	}
	row, col := (y-m.gridTop)/cellHeight, x/stride
	if row >= m.rules.Rows || col >= m.rules.Cols {
		return -1
	}
	return m.rules.Index(row, col)
}

func (m *Model) addLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > maxLog {
		m.logLines = m.logLines[len(m.logLines)-maxLog:]
	}
	m.logView.SetContent(strings.Join(m.logLines, "\n"))
	m.logView.GotoBottom()
}

// View renders the game
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	scoreboard := lipgloss.JoinHorizontal(lipgloss.Top,
		ScoreStyle.Render(fmt.Sprintf("Score: %d", m.score)),
		" ",
		MissStyle.Render(fmt.Sprintf("Misses: %d", m.misses)),
	)

	header := strings.Join([]string{
		TitleStyle.Render("Whack-A-Mole"),
		InstructionsStyle.Render(fmt.Sprintf(
			"Click the mole to whack it! Misses don't score. Reach %d hits to win!", m.rules.TargetScore)),
		"",
		scoreboard,
	}, "\n")
	m.gridTop = lipgloss.Height(header) + 1

	board := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderGrid(),
		"  ",
		LogPaneStyle.Render(m.logView.View()),
	)

	var status string
	if m.over {
		status = WinStyle.Render(m.status) + "\n" + InfoStyle.Render("Press enter to exit")
	} else {
		status = StatusStyle.Render(m.status)
	}

	return strings.Join([]string{
		header,
		"",
		board,
		"",
		m.progress.ViewAs(float64(m.score) / float64(m.rules.TargetScore)),
		status,
		"",
		m.help.View(m.keys),
	}, "\n")
}

func (m *Model) renderGrid() string {
	rows := make([]string, 0, m.rules.Rows)
	for r := 0; r < m.rules.Rows; r++ {
		cells := make([]string, 0, m.rules.Cols*2)
		for c := 0; c < m.rules.Cols; c++ {
			if c > 0 {
				cells = append(cells, strings.Repeat(" ", cellGap))
			}
			cells = append(cells, m.renderCell(m.rules.Index(r, c)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderCell(hole int) string {
	style := HoleStyle
	lines := []string{keyForHole(hole, m.rules.Cols), " _____ ", "(_____)"}
	if hole == m.mole {
		style = MoleStyle
		lines = []string{" (o o) ", " (=^=) ", "(_____)"}
	}
	if hole == m.cursor && !m.over {
		style = style.Background(CursorStyle.GetBackground())
	}
	return style.Render(strings.Join(lines, "\n"))
}
