package game

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/whackamole/internal/clock"
	"github.com/lox/whackamole/internal/randutil"
	"github.com/lox/whackamole/internal/sessionid"
	"github.com/lox/whackamole/internal/statistics"
)

// Config wires a Controller to its collaborators
type Config struct {
	Rules     Rules
	Scheduler clock.Scheduler // defaults to the wall clock
	Rand      randutil.Source // defaults to a time-seeded source
	Display   Display
	Logger    *log.Logger
	SessionID string // generated when empty
}

// Result describes a game that has finished or is in progress
type Result struct {
	SessionID string
	Rules     Rules
	Snapshot  Snapshot
	Stats     statistics.Session
	Started   time.Time
	Elapsed   time.Duration
	Completed bool // true when the target score was reached
}

// Controller runs a Session against a scheduler: a recurring spawn tick and a
// one-shot timeout per mole. Timer callbacks and clicks may arrive on any
// goroutine and are serialised by the controller.
type Controller struct {
	mu sync.Mutex

	id      string
	rules   Rules
	session *Session
	sched   clock.Scheduler
	rng     randutil.Source
	logger  *log.Logger
	stats   statistics.Session

	startedAt  time.Time
	finishedAt time.Time
	shownAt    time.Time
	timeout    clock.Timer // most recent timeout; older ones are stale by generation
	cancel     context.CancelFunc
	done       chan struct{}
	finished   bool
}

// NewController creates a controller. The game does not begin until Start.
func NewController(cfg Config) (*Controller, error) {
	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	sched := cfg.Scheduler
	if sched == nil {
		sched = clock.NewReal()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = randutil.New(randutil.Seed(0))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := cfg.SessionID
	if id == "" {
		id = sessionid.New()
	}

	return &Controller{
		id:      id,
		rules:   cfg.Rules,
		session: NewSession(cfg.Rules, cfg.Display),
		sched:   sched,
		rng:     rng,
		logger:  logger.WithPrefix("game").With("session", id),
		done:    make(chan struct{}),
	}, nil
}

// ID returns the session ID
func (c *Controller) ID() string {
	return c.id
}

// Rules returns the rules in effect
func (c *Controller) Rules() Rules {
	return c.rules
}

// Start arms the recurring spawn timer. The game ends when the target score is
// reached, Stop is called, or ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil || c.finished {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.startedAt = c.sched.Now()
	c.sched.Every(ctx, c.rules.Interval, c.spawnTick)

	c.logger.Info("Game started",
		"rows", c.rules.Rows,
		"cols", c.rules.Cols,
		"visible", c.rules.Visible,
		"interval", c.rules.Interval,
		"target", c.rules.TargetScore)

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
}

// Click whacks a hole
func (c *Controller) Click(hole int) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finished {
		return OutcomeIgnored
	}

	outcome := c.session.Click(hole)
	switch outcome {
	case OutcomeHit, OutcomeWin:
		reaction := c.sched.Now().Sub(c.shownAt)
		c.stats.RecordHit(reaction)
		c.logger.Debug("Hit", "hole", hole, "reaction", reaction)
	case OutcomeMissWrongHole:
		c.stats.RecordWrongHole()
		c.logger.Debug("Missed, wrong hole", "hole", hole)
	case OutcomeMissNoMole:
		c.stats.RecordEmptyHole()
		c.logger.Debug("Missed, no mole up", "hole", hole)
	case OutcomeIgnored:
		c.logger.Warn("Ignored click", "hole", hole)
	}

	if outcome == OutcomeWin {
		snap := c.session.Snapshot()
		c.logger.Info("Target reached", "score", snap.Score, "misses", snap.Misses)
		c.finish()
	}
	return outcome
}

// Stop ends the game early. Pending timers are cancelled; calling Stop after
// the game has ended is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finished {
		return
	}
	c.logger.Info("Game stopped", "score", c.session.Snapshot().Score)
	c.finish()
}

// Done is closed once the game has ended for any reason
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Snapshot returns the current session state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snapshot()
}

// Result summarises the game so far
func (c *Controller) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	end := c.finishedAt
	if !c.finished {
		end = c.sched.Now()
	}
	var elapsed time.Duration
	if !c.startedAt.IsZero() {
		elapsed = end.Sub(c.startedAt)
	}

	stats := c.stats
	stats.Reactions = append([]time.Duration(nil), c.stats.Reactions...)

	return Result{
		SessionID: c.id,
		Rules:     c.rules,
		Snapshot:  c.session.Snapshot(),
		Stats:     stats,
		Started:   c.startedAt,
		Elapsed:   elapsed,
		Completed: c.session.Over(),
	}
}

func (c *Controller) spawnTick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finished {
		return
	}

	hole := c.rng.IntN(c.rules.Holes())
	generation, err := c.session.Spawn(hole)
	if err != nil {
		c.logger.Error("Failed to spawn mole", "hole", hole, "error", err)
		return
	}

	c.stats.RecordSpawn()
	c.shownAt = c.sched.Now()
	c.timeout = c.sched.After(c.rules.Visible, func() {
		c.timeoutTick(generation)
	})

	c.logger.Debug("Mole up", "hole", hole, "generation", generation)
}

func (c *Controller) timeoutTick(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finished {
		return
	}
	if !c.session.Timeout(generation) {
		c.logger.Debug("Dropped stale timeout", "generation", generation)
		return
	}
	c.stats.RecordTimeout()
	c.logger.Debug("Too slow", "generation", generation)
}

// finish must be called with mu held
func (c *Controller) finish() {
	c.finished = true
	c.finishedAt = c.sched.Now()
	if c.timeout != nil {
		c.timeout.Stop()
		c.timeout = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	close(c.done)
}
