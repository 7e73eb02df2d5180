package game

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/whackamole/internal/clock"
	"github.com/lox/whackamole/internal/randutil"
)

// scriptedHoles returns a fixed sequence of holes, cycling when exhausted
type scriptedHoles struct {
	holes []int
	next  int
}

func (s *scriptedHoles) IntN(n int) int {
	hole := s.holes[s.next%len(s.holes)] % n
	s.next++
	return hole
}

type controllerHarness struct {
	t       *testing.T
	ctx     context.Context
	mClock  *quartz.Mock
	display *recordingDisplay
	ctrl    *Controller
}

func newControllerHarness(t *testing.T, rules Rules, holes ...int) *controllerHarness {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	mClock := quartz.NewMock(t)
	display := &recordingDisplay{}

	var rng randutil.Source = randutil.New(42)
	if len(holes) > 0 {
		rng = &scriptedHoles{holes: holes}
	}

	ctrl, err := NewController(Config{
		Rules:     rules,
		Scheduler: clock.New(mClock),
		Rand:      rng,
		Display:   display,
		Logger:    log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
		SessionID: "test-session",
	})
	require.NoError(t, err)

	return &controllerHarness{t: t, ctx: ctx, mClock: mClock, display: display, ctrl: ctrl}
}

// advance fires the next pending timer and waits for its callback to return
func (h *controllerHarness) advance() time.Duration {
	h.t.Helper()
	d, w := h.mClock.AdvanceNext()
	w.MustWait(h.ctx)
	return d
}

// advanceUntilMole fires timers until a mole is up
func (h *controllerHarness) advanceUntilMole() Snapshot {
	h.t.Helper()
	for i := 0; i < 10; i++ {
		h.advance()
		if snap := h.ctrl.Snapshot(); snap.MolePresent() {
			return snap
		}
	}
	h.t.Fatal("no mole appeared")
	return Snapshot{}
}

func TestControllerScenario(t *testing.T) {
	h := newControllerHarness(t, DefaultRules(), 5, 2, 0, 1, 3, 4, 6, 7, 8, 9, 10)
	h.ctrl.Start(h.ctx)

	// first spawn after one interval
	assert.Equal(t, DefaultInterval, h.advance())
	snap := h.ctrl.Snapshot()
	require.Equal(t, StateMoleUp, snap.State)
	require.Equal(t, 5, snap.Hole)

	assert.Equal(t, OutcomeHit, h.ctrl.Click(5))
	snap = h.ctrl.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 1, snap.Score)
	assert.Zero(t, snap.Misses)

	// the hit mole's timeout still fires but is stale
	assert.Equal(t, DefaultVisible, h.advance())
	assert.Zero(t, h.ctrl.Snapshot().Misses)

	// next spawn at hole 2, left to time out
	assert.Equal(t, DefaultInterval-DefaultVisible, h.advance())
	require.Equal(t, 2, h.ctrl.Snapshot().Hole)
	assert.Equal(t, DefaultVisible, h.advance())
	snap = h.ctrl.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, 1, snap.Misses)

	// clicking an empty grid is a miss
	assert.Equal(t, OutcomeMissNoMole, h.ctrl.Click(5))
	assert.Equal(t, 2, h.ctrl.Snapshot().Misses)

	for hits := 2; hits <= DefaultTargetScore; hits++ {
		snap := h.advanceUntilMole()
		outcome := h.ctrl.Click(snap.Hole)
		if hits < DefaultTargetScore {
			require.Equal(t, OutcomeHit, outcome)
			select {
			case <-h.ctrl.Done():
				t.Fatalf("game ended after %d hits", hits)
			default:
			}
		} else {
			require.Equal(t, OutcomeWin, outcome)
		}
	}

	snap = h.ctrl.Snapshot()
	assert.Equal(t, StateOver, snap.State)
	assert.Equal(t, 10, snap.Score)
	assert.Equal(t, 2, snap.Misses)
	require.Len(t, h.display.gameOver, 1)
	assert.Equal(t, Summary{Score: 10, Misses: 2}, h.display.gameOver[0])

	select {
	case <-h.ctrl.Done():
	default:
		t.Fatal("done channel not closed after win")
	}

	result := h.ctrl.Result()
	assert.True(t, result.Completed)
	assert.Equal(t, "test-session", result.SessionID)
	assert.Equal(t, 10, result.Stats.Hits)
	assert.Equal(t, 1, result.Stats.Timeouts)
	assert.Equal(t, 1, result.Stats.EmptyHole)
	assert.Zero(t, result.Stats.WrongHole)
	assert.Len(t, result.Stats.Reactions, 10)
	assert.Equal(t, result.Snapshot.Misses, result.Stats.Misses())
}

func TestControllerIgnoresTimersAfterWin(t *testing.T) {
	rules := DefaultRules()
	rules.TargetScore = 1
	h := newControllerHarness(t, rules, 3)
	h.ctrl.Start(h.ctx)

	h.advance()
	require.Equal(t, OutcomeWin, h.ctrl.Click(3))
	before := h.ctrl.Snapshot()
	events := len(h.display.events)

	// whatever is still queued must not move the game
	h.mClock.Advance(rules.Interval).MustWait(h.ctx)
	h.mClock.Advance(rules.Interval).MustWait(h.ctx)

	assert.Equal(t, before, h.ctrl.Snapshot())
	assert.Equal(t, OutcomeIgnored, h.ctrl.Click(3))
	assert.Len(t, h.display.events, events)
	assert.Len(t, h.display.gameOver, 1)
}

func TestControllerStaleTimeoutAfterRespawn(t *testing.T) {
	// moles stay up longer than the spawn interval so every timeout is
	// overtaken by the next spawn
	rules := DefaultRules()
	rules.Visible = 1500 * time.Millisecond
	h := newControllerHarness(t, rules, 3, 3, 8, 1)
	h.ctrl.Start(h.ctx)

	h.advance() // t=1000 spawn gen 1 at hole 3
	first := h.ctrl.Snapshot()
	require.Equal(t, 3, first.Hole)

	h.advance() // t=2000 spawn gen 2 at hole 3, hides gen 1 silently
	second := h.ctrl.Snapshot()
	assert.Equal(t, 3, second.Hole)
	assert.Greater(t, second.Generation, first.Generation)
	assert.Zero(t, second.Misses)

	for i := 0; i < 6; i++ {
		h.advance()
		snap := h.ctrl.Snapshot()
		assert.Zero(t, snap.Misses, "stale timeout charged a miss at step %d", i)
		assert.Equal(t, StateMoleUp, snap.State)
	}

	result := h.ctrl.Result()
	assert.Zero(t, result.Stats.Timeouts)
	assert.Equal(t, result.Stats.Spawns, int(result.Snapshot.Generation))
}

func TestControllerWrongHole(t *testing.T) {
	h := newControllerHarness(t, DefaultRules(), 4)
	h.ctrl.Start(h.ctx)
	h.advance()

	assert.Equal(t, OutcomeMissWrongHole, h.ctrl.Click(5))
	assert.Equal(t, OutcomeIgnored, h.ctrl.Click(99))

	snap := h.ctrl.Snapshot()
	assert.Equal(t, 1, snap.Misses)
	assert.Equal(t, 4, snap.Hole)
	assert.Equal(t, 1, h.ctrl.Result().Stats.WrongHole)
}

func TestControllerReactionTime(t *testing.T) {
	h := newControllerHarness(t, DefaultRules(), 0)
	h.ctrl.Start(h.ctx)
	h.advance()

	h.mClock.Advance(300 * time.Millisecond).MustWait(h.ctx)
	require.Equal(t, OutcomeHit, h.ctrl.Click(0))

	result := h.ctrl.Result()
	require.Len(t, result.Stats.Reactions, 1)
	assert.Equal(t, 300*time.Millisecond, result.Stats.Reactions[0])
	assert.Equal(t, DefaultInterval+300*time.Millisecond, result.Elapsed)
}

func TestControllerStop(t *testing.T) {
	h := newControllerHarness(t, DefaultRules(), 1)
	h.ctrl.Start(h.ctx)
	h.advance()

	h.ctrl.Stop()
	h.ctrl.Stop()

	select {
	case <-h.ctrl.Done():
	default:
		t.Fatal("done channel not closed after stop")
	}

	assert.Equal(t, OutcomeIgnored, h.ctrl.Click(1))
	result := h.ctrl.Result()
	assert.False(t, result.Completed)
	assert.Zero(t, result.Snapshot.Score)
	assert.Empty(t, h.display.gameOver)
}

func TestControllerContextCancel(t *testing.T) {
	h := newControllerHarness(t, DefaultRules(), 1)
	ctx, cancel := context.WithCancel(h.ctx)
	h.ctrl.Start(ctx)
	cancel()

	select {
	case <-h.ctrl.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not stop when its context was cancelled")
	}
	assert.False(t, h.ctrl.Result().Completed)
}

func TestNewControllerRejectsBadRules(t *testing.T) {
	rules := DefaultRules()
	rules.Rows = 0

	_, err := NewController(Config{Rules: rules})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rules")
}

func TestNewControllerGeneratesSessionID(t *testing.T) {
	ctrl, err := NewController(Config{Rules: DefaultRules()})
	require.NoError(t, err)
	assert.Len(t, ctrl.ID(), 26)
}
