// Package game implements the Whack-A-Mole rules.
//
// Session is the state machine for one playthrough. It is driven by three
// inputs: Spawn raises a mole and returns a generation, Timeout expires the
// appearance with that generation, and Click whacks a hole. A timeout whose
// generation no longer matches the mole on screen is ignored, so callers never
// need to cancel timers for correctness.
//
// # Basic Usage
//
//	s := game.NewSession(game.DefaultRules(), display)
//	gen, _ := s.Spawn(5)
//	s.Click(5)      // OutcomeHit, score 1
//	s.Timeout(gen)  // false: the mole was already whacked
//
// Controller wraps a Session with a clock.Scheduler and a random source: it
// spawns a mole every Rules.Interval, arms a timeout of Rules.Visible for each
// one, and serialises timer callbacks with clicks arriving from the UI.
//
// # Deterministic Testing
//
// Pass a quartz mock clock and a seeded source:
//
//	mClock := quartz.NewMock(t)
//	ctrl, _ := game.NewController(game.Config{
//		Rules:     game.DefaultRules(),
//		Scheduler: clock.New(mClock),
//		Rand:      randutil.New(42),
//	})
//	ctrl.Start(ctx)
//	_, w := mClock.AdvanceNext()
//	w.MustWait(ctx) // first mole is up
package game
