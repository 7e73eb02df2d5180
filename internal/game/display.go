package game

// MissCause records why a miss was charged
type MissCause int

const (
	MissWrongHole MissCause = iota // clicked a hole other than the mole's
	MissEmptyHole                  // clicked while no mole was up
	MissTimeout                    // the mole went back down unwhacked
)

// String returns a short label for the cause
func (c MissCause) String() string {
	switch c {
	case MissWrongHole:
		return "wrong-hole"
	case MissEmptyHole:
		return "empty-hole"
	case MissTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Summary is the final result of a game
type Summary struct {
	Score  int
	Misses int
}

// Display is notified of every visible state change. Calls are made while the
// session is being mutated, so implementations must not call back into the
// session or controller.
type Display interface {
	ScoreChanged(score int)
	MissesChanged(misses int, cause MissCause)
	MoleShown(hole int)
	MoleHidden(hole int)
	GameOver(summary Summary)
}

// NopDisplay ignores every notification
type NopDisplay struct{}

func (NopDisplay) ScoreChanged(int)             {}
func (NopDisplay) MissesChanged(int, MissCause) {}
func (NopDisplay) MoleShown(int)                {}
func (NopDisplay) MoleHidden(int)               {}
func (NopDisplay) GameOver(Summary)             {}
