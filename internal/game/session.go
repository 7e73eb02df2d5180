package game

import (
	"errors"
	"fmt"
)

var (
	// ErrGameOver is returned when a spawn is attempted after the game has ended
	ErrGameOver = errors.New("game is over")
	// ErrHoleOutOfRange is returned when a spawn targets a hole outside the grid
	ErrHoleOutOfRange = errors.New("hole out of range")
)

// State is the coarse state of a session
type State int

const (
	StateIdle State = iota
	StateMoleUp
	StateOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoleUp:
		return "mole-up"
	case StateOver:
		return "over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome describes what a click did
type Outcome int

const (
	OutcomeIgnored Outcome = iota // game over or hole outside the grid
	OutcomeHit
	OutcomeWin // a hit that reached the target score
	OutcomeMissWrongHole
	OutcomeMissNoMole
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeHit:
		return "hit"
	case OutcomeWin:
		return "win"
	case OutcomeMissWrongHole:
		return "miss-wrong-hole"
	case OutcomeMissNoMole:
		return "miss-no-mole"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// IsHit reports whether the click whacked the mole
func (o Outcome) IsHit() bool {
	return o == OutcomeHit || o == OutcomeWin
}

// IsMiss reports whether the click was charged as a miss
func (o Outcome) IsMiss() bool {
	return o == OutcomeMissWrongHole || o == OutcomeMissNoMole
}

// Snapshot is a read-only copy of session state
type Snapshot struct {
	State      State
	Score      int
	Misses     int
	Hole       int // -1 when no mole is up
	Generation uint64
}

// MolePresent reports whether a mole is currently up
func (s Snapshot) MolePresent() bool {
	return s.State == StateMoleUp
}

// Session is the spawn/hit/timeout state machine for one game. It has no
// notion of time: callers drive it with Spawn, Timeout and Click. A Session
// is not safe for concurrent use.
type Session struct {
	rules   Rules
	display Display

	score      int
	misses     int
	hole       int
	generation uint64
	over       bool
}

// NewSession creates an idle session. A nil display is replaced with NopDisplay.
func NewSession(rules Rules, display Display) *Session {
	if display == nil {
		display = NopDisplay{}
	}
	return &Session{
		rules:   rules,
		display: display,
		hole:    -1,
	}
}

// Rules returns the rules the session was created with
func (s *Session) Rules() Rules {
	return s.rules
}

// Spawn raises a mole at hole and returns the generation tagging this
// appearance. A mole that is still up is hidden first without charging a miss.
func (s *Session) Spawn(hole int) (uint64, error) {
	if s.over {
		return 0, ErrGameOver
	}
	if !s.rules.Contains(hole) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrHoleOutOfRange, hole, s.rules.Holes())
	}

	if s.hole >= 0 {
		s.hide()
	}

	s.generation++
	s.hole = hole
	s.display.MoleShown(hole)
	return s.generation, nil
}

// Timeout expires the appearance tagged with generation. It returns false,
// and changes nothing, if that mole has already gone down.
func (s *Session) Timeout(generation uint64) bool {
	if s.over || s.hole < 0 || generation != s.generation {
		return false
	}

	s.misses++
	s.display.MissesChanged(s.misses, MissTimeout)
	s.hide()
	return true
}

// Click whacks hole
func (s *Session) Click(hole int) Outcome {
	if s.over || !s.rules.Contains(hole) {
		return OutcomeIgnored
	}

	if s.hole < 0 {
		s.misses++
		s.display.MissesChanged(s.misses, MissEmptyHole)
		return OutcomeMissNoMole
	}
	if hole != s.hole {
		s.misses++
		s.display.MissesChanged(s.misses, MissWrongHole)
		return OutcomeMissWrongHole
	}

	s.score++
	s.display.ScoreChanged(s.score)
	s.hide()

	if s.score >= s.rules.TargetScore {
		s.over = true
		s.display.GameOver(Summary{Score: s.score, Misses: s.misses})
		return OutcomeWin
	}
	return OutcomeHit
}

// Over reports whether the game has ended
func (s *Session) Over() bool {
	return s.over
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	state := StateIdle
	switch {
	case s.over:
		state = StateOver
	case s.hole >= 0:
		state = StateMoleUp
	}
	return Snapshot{
		State:      state,
		Score:      s.score,
		Misses:     s.misses,
		Hole:       s.hole,
		Generation: s.generation,
	}
}

func (s *Session) hide() {
	hole := s.hole
	s.hole = -1
	s.display.MoleHidden(hole)
}
