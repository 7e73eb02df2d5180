package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/whackamole/internal/game"
)

// Messages delivered to the model when the game changes
type (
	ScoreMsg struct {
		Score int
	}
	MissMsg struct {
		Misses int
		Cause  game.MissCause
	}
	MoleShownMsg struct {
		Hole int
	}
	MoleHiddenMsg struct {
		Hole int
	}
	GameOverMsg struct {
		Summary game.Summary
	}
)

// feedBuffer comfortably exceeds the events produced by one burst of input
const feedBuffer = 256

// Feed is a game.Display that forwards notifications to the Bubble Tea
// program. Notifications are queued so the game never waits on rendering.
type Feed struct {
	events chan tea.Msg
}

var _ game.Display = (*Feed)(nil)

// NewFeed creates an empty feed
func NewFeed() *Feed {
	return &Feed{events: make(chan tea.Msg, feedBuffer)}
}

func (f *Feed) ScoreChanged(score int) {
	f.events <- ScoreMsg{Score: score}
}

func (f *Feed) MissesChanged(misses int, cause game.MissCause) {
	f.events <- MissMsg{Misses: misses, Cause: cause}
}

func (f *Feed) MoleShown(hole int) {
	f.events <- MoleShownMsg{Hole: hole}
}

func (f *Feed) MoleHidden(hole int) {
	f.events <- MoleHiddenMsg{Hole: hole}
}

func (f *Feed) GameOver(summary game.Summary) {
	f.events <- GameOverMsg{Summary: summary}
}

// Next returns a command that waits for the next notification
func (f *Feed) Next() tea.Cmd {
	return func() tea.Msg {
		return <-f.events
	}
}
