package game

import (
	"fmt"
	"time"
)

// Default game constants
const (
	DefaultRows        = 4
	DefaultCols        = 4
	DefaultVisible     = 800 * time.Millisecond
	DefaultInterval    = 1000 * time.Millisecond
	DefaultTargetScore = 10

	// MaxGridSide bounds the board to what fits in a terminal.
	MaxGridSide = 9
)

// Rules are the fixed parameters of a single game
type Rules struct {
	Rows        int
	Cols        int
	Visible     time.Duration // how long a mole stays up before it counts as a miss
	Interval    time.Duration // time between spawns
	TargetScore int           // hits required to win
}

// DefaultRules returns the classic 4x4 game
func DefaultRules() Rules {
	return Rules{
		Rows:        DefaultRows,
		Cols:        DefaultCols,
		Visible:     DefaultVisible,
		Interval:    DefaultInterval,
		TargetScore: DefaultTargetScore,
	}
}

// Holes returns the number of holes on the grid
func (r Rules) Holes() int {
	return r.Rows * r.Cols
}

// Position converts a row-major hole index into its row and column
func (r Rules) Position(hole int) (row, col int) {
	return hole / r.Cols, hole % r.Cols
}

// Index converts a row and column into a row-major hole index
func (r Rules) Index(row, col int) int {
	return row*r.Cols + col
}

// Contains reports whether hole is a valid index for this grid
func (r Rules) Contains(hole int) bool {
	return hole >= 0 && hole < r.Holes()
}

// Validate checks the rules for internal consistency
func (r Rules) Validate() error {
	if r.Rows < 1 || r.Rows > MaxGridSide {
		return fmt.Errorf("rows must be between 1 and %d, got %d", MaxGridSide, r.Rows)
	}
	if r.Cols < 1 || r.Cols > MaxGridSide {
		return fmt.Errorf("cols must be between 1 and %d, got %d", MaxGridSide, r.Cols)
	}
	if r.Visible <= 0 {
		return fmt.Errorf("mole visible duration must be positive, got %s", r.Visible)
	}
	if r.Interval <= 0 {
		return fmt.Errorf("spawn interval must be positive, got %s", r.Interval)
	}
	if r.TargetScore < 1 {
		return fmt.Errorf("target score must be at least 1, got %d", r.TargetScore)
	}
	return nil
}
