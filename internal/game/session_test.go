package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDisplay captures notifications as readable strings
type recordingDisplay struct {
	events   []string
	gameOver []Summary
}

func (r *recordingDisplay) ScoreChanged(score int) {
	r.events = append(r.events, fmt.Sprintf("score %d", score))
}

func (r *recordingDisplay) MissesChanged(misses int, cause MissCause) {
	r.events = append(r.events, fmt.Sprintf("misses %d %s", misses, cause))
}

func (r *recordingDisplay) MoleShown(hole int) {
	r.events = append(r.events, fmt.Sprintf("shown %d", hole))
}

func (r *recordingDisplay) MoleHidden(hole int) {
	r.events = append(r.events, fmt.Sprintf("hidden %d", hole))
}

func (r *recordingDisplay) GameOver(summary Summary) {
	r.gameOver = append(r.gameOver, summary)
	r.events = append(r.events, fmt.Sprintf("over %d %d", summary.Score, summary.Misses))
}

func (r *recordingDisplay) reset() {
	r.events = nil
}

func newTestSession(target int) (*Session, *recordingDisplay) {
	rules := DefaultRules()
	rules.TargetScore = target
	display := &recordingDisplay{}
	return NewSession(rules, display), display
}

func assertConsistent(t *testing.T, snap Snapshot, rules Rules) {
	t.Helper()
	if snap.MolePresent() {
		assert.True(t, rules.Contains(snap.Hole), "active hole %d out of range", snap.Hole)
	} else {
		assert.Equal(t, -1, snap.Hole, "no mole but hole is set")
	}
}

func TestSessionStartsIdle(t *testing.T) {
	s, display := newTestSession(10)

	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, -1, snap.Hole)
	assert.Zero(t, snap.Score)
	assert.Zero(t, snap.Misses)
	assert.False(t, s.Over())
	assert.Empty(t, display.events)
}

func TestSessionHit(t *testing.T) {
	s, display := newTestSession(10)

	gen, err := s.Spawn(5)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), gen)
	assert.Equal(t, StateMoleUp, s.Snapshot().State)

	outcome := s.Click(5)
	assert.Equal(t, OutcomeHit, outcome)
	assert.True(t, outcome.IsHit())

	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 1, snap.Score)
	assert.Zero(t, snap.Misses)
	assert.Equal(t, []string{"shown 5", "score 1", "hidden 5"}, display.events)
}

func TestSessionMisses(t *testing.T) {
	t.Run("wrong hole keeps the mole up", func(t *testing.T) {
		s, display := newTestSession(10)
		_, err := s.Spawn(3)
		require.NoError(t, err)
		display.reset()

		outcome := s.Click(4)
		assert.Equal(t, OutcomeMissWrongHole, outcome)
		assert.True(t, outcome.IsMiss())

		snap := s.Snapshot()
		assert.Equal(t, StateMoleUp, snap.State)
		assert.Equal(t, 3, snap.Hole)
		assert.Equal(t, 1, snap.Misses)
		assert.Equal(t, []string{"misses 1 wrong-hole"}, display.events)
	})

	t.Run("click with no mole", func(t *testing.T) {
		s, display := newTestSession(10)

		assert.Equal(t, OutcomeMissNoMole, s.Click(0))
		assert.Equal(t, OutcomeMissNoMole, s.Click(15))

		snap := s.Snapshot()
		assert.Equal(t, StateIdle, snap.State)
		assert.Equal(t, 2, snap.Misses)
		assert.Equal(t, []string{"misses 1 empty-hole", "misses 2 empty-hole"}, display.events)
	})

	t.Run("out of range clicks are ignored", func(t *testing.T) {
		s, display := newTestSession(10)
		_, err := s.Spawn(1)
		require.NoError(t, err)
		display.reset()

		for _, hole := range []int{-1, 16, 100} {
			assert.Equal(t, OutcomeIgnored, s.Click(hole))
		}

		snap := s.Snapshot()
		assert.Zero(t, snap.Misses)
		assert.Equal(t, StateMoleUp, snap.State)
		assert.Empty(t, display.events)
	})
}

func TestSessionTimeout(t *testing.T) {
	s, display := newTestSession(10)

	gen, err := s.Spawn(2)
	require.NoError(t, err)
	display.reset()

	assert.True(t, s.Timeout(gen))

	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 1, snap.Misses)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, []string{"misses 1 timeout", "hidden 2"}, display.events)
}

func TestSessionStaleTimeout(t *testing.T) {
	t.Run("after a hit", func(t *testing.T) {
		s, display := newTestSession(10)
		gen, err := s.Spawn(7)
		require.NoError(t, err)
		require.Equal(t, OutcomeHit, s.Click(7))
		display.reset()

		assert.False(t, s.Timeout(gen))
		assert.False(t, s.Timeout(gen), "repeated delivery must also be dropped")

		snap := s.Snapshot()
		assert.Equal(t, 1, snap.Score)
		assert.Zero(t, snap.Misses)
		assert.Empty(t, display.events)
	})

	t.Run("after a respawn", func(t *testing.T) {
		s, display := newTestSession(10)
		oldGen, err := s.Spawn(3)
		require.NoError(t, err)

		newGen, err := s.Spawn(9)
		require.NoError(t, err)
		assert.Greater(t, newGen, oldGen)
		assert.Equal(t, []string{"shown 3", "hidden 3", "shown 9"}, display.events,
			"respawn hides the previous mole silently")
		display.reset()

		assert.False(t, s.Timeout(oldGen))

		snap := s.Snapshot()
		assert.Equal(t, StateMoleUp, snap.State)
		assert.Equal(t, 9, snap.Hole)
		assert.Zero(t, snap.Misses)
		assert.Empty(t, display.events)

		assert.True(t, s.Timeout(newGen))
		assert.Equal(t, 1, s.Snapshot().Misses)
	})

	t.Run("respawn on the same hole", func(t *testing.T) {
		s, _ := newTestSession(10)
		oldGen, err := s.Spawn(4)
		require.NoError(t, err)
		_, err = s.Spawn(4)
		require.NoError(t, err)

		assert.False(t, s.Timeout(oldGen))
		assert.Equal(t, StateMoleUp, s.Snapshot().State)
	})

	t.Run("timeout with no mole", func(t *testing.T) {
		s, _ := newTestSession(10)
		assert.False(t, s.Timeout(0))
		assert.False(t, s.Timeout(1))
		assert.Zero(t, s.Snapshot().Misses)
	})
}

func TestSessionSpawnErrors(t *testing.T) {
	s, _ := newTestSession(1)

	_, err := s.Spawn(16)
	assert.ErrorIs(t, err, ErrHoleOutOfRange)
	_, err = s.Spawn(-1)
	assert.ErrorIs(t, err, ErrHoleOutOfRange)
	assert.Equal(t, StateIdle, s.Snapshot().State)

	_, err = s.Spawn(0)
	require.NoError(t, err)
	require.Equal(t, OutcomeWin, s.Click(0))

	_, err = s.Spawn(0)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestSessionWinsOnTarget(t *testing.T) {
	s, display := newTestSession(10)

	for i := 1; i <= 10; i++ {
		hole := i % 16
		_, err := s.Spawn(hole)
		require.NoError(t, err)

		// a wrong click between hits
		s.Click((hole + 1) % 16)

		outcome := s.Click(hole)
		if i < 10 {
			require.Equal(t, OutcomeHit, outcome, "hit %d", i)
			require.False(t, s.Over(), "game ended early after hit %d", i)
			require.Empty(t, display.gameOver)
		} else {
			require.Equal(t, OutcomeWin, outcome)
		}
		assertConsistent(t, s.Snapshot(), s.Rules())
	}

	snap := s.Snapshot()
	assert.Equal(t, StateOver, snap.State)
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, 10, snap.Misses)
	require.Len(t, display.gameOver, 1)
	assert.Equal(t, Summary{Score: 10, Misses: 10}, display.gameOver[0])
}

func TestSessionOverIsTerminal(t *testing.T) {
	s, display := newTestSession(1)

	gen, err := s.Spawn(6)
	require.NoError(t, err)
	require.Equal(t, OutcomeWin, s.Click(6))
	before := s.Snapshot()
	display.reset()

	assert.Equal(t, OutcomeIgnored, s.Click(6))
	assert.Equal(t, OutcomeIgnored, s.Click(0))
	assert.False(t, s.Timeout(gen))
	_, err = s.Spawn(1)
	assert.ErrorIs(t, err, ErrGameOver)

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, StateOver, s.Snapshot().State)
	assert.Empty(t, display.events)
}

func TestSessionNilDisplay(t *testing.T) {
	s := NewSession(DefaultRules(), nil)
	_, err := s.Spawn(0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeHit, s.Click(0))
}
