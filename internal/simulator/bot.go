package simulator

import (
	rand "math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/whackamole/internal/clock"
	"github.com/lox/whackamole/internal/config"
	"github.com/lox/whackamole/internal/game"
)

// minReaction is the fastest a bot can ever click
const minReaction = 80 * time.Millisecond

// Clicker receives a bot's clicks
type Clicker interface {
	Click(hole int) game.Outcome
}

// Bot is a simulated player. It watches the display and clicks after a
// sampled reaction time, aiming at the wrong hole with probability
// 1-accuracy. A pending click is withdrawn if the mole goes down first.
type Bot struct {
	game.NopDisplay

	profile config.BotProfile
	rules   game.Rules
	sched   clock.Scheduler
	rng     *rand.Rand
	clicker Clicker
	logger  zerolog.Logger

	pending clock.Timer
}

// NewBot creates a bot. Attach must be called before the game starts.
func NewBot(profile config.BotProfile, rules game.Rules, sched clock.Scheduler, rng *rand.Rand) *Bot {
	return &Bot{
		profile: profile,
		rules:   rules,
		sched:   sched,
		rng:     rng,
		logger:  zerolog.Nop(),
	}
}

// Attach sets the target of the bot's clicks
func (b *Bot) Attach(clicker Clicker) {
	b.clicker = clicker
}

// MoleShown schedules a click
func (b *Bot) MoleShown(hole int) {
	target := b.aim(hole)
	reaction := b.reaction()
	b.pending = b.sched.After(reaction, func() {
		b.pending = nil
		outcome := b.clicker.Click(target)
		b.logger.Trace().
			Int("hole", hole).
			Int("target", target).
			Dur("reaction", reaction).
			Stringer("outcome", outcome).
			Msg("Bot clicked")
	})
}

// MoleHidden withdraws a click that has not landed yet
func (b *Bot) MoleHidden(int) {
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
		b.logger.Trace().Msg("Bot too slow, click withdrawn")
	}
}

func (b *Bot) reaction() time.Duration {
	d := b.profile.Reaction() + time.Duration(b.rng.NormFloat64()*float64(b.profile.Jitter()))
	if d < minReaction {
		d = minReaction
	}
	return d
}

func (b *Bot) aim(hole int) int {
	holes := b.rules.Holes()
	if holes == 1 || b.rng.Float64() < b.profile.HitChance() {
		return hole
	}
	// any other hole, uniformly
	wrong := b.rng.IntN(holes - 1)
	if wrong >= hole {
		wrong++
	}
	return wrong
}
