// Package simulator plays headless games with bot players on a virtual clock.
package simulator

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/whackamole/internal/config"
	"github.com/lox/whackamole/internal/game"
	"github.com/lox/whackamole/internal/randutil"
	"github.com/lox/whackamole/internal/sessionid"
	"github.com/lox/whackamole/internal/statistics"
)

// DefaultMaxDuration is the virtual time after which an unfinished game is abandoned
const DefaultMaxDuration = 5 * time.Minute

// Config holds configuration for running simulations
type Config struct {
	Rules       game.Rules
	Bot         config.BotProfile
	Games       int
	Seed        int64
	Workers     int           // defaults to GOMAXPROCS
	MaxDuration time.Duration // virtual time limit per game
	Logger      *zerolog.Logger
}

// Simulator runs batches of bot-played games
type Simulator struct {
	config Config
	logger zerolog.Logger
}

// New creates a new simulator with the given configuration
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if cfg.Games < 1 {
		return nil, fmt.Errorf("games must be at least 1, got %d", cfg.Games)
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = DefaultMaxDuration
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Simulator{
		config: cfg,
		logger: logger.With().Str("component", "sim").Str("bot", cfg.Bot.Name).Logger(),
	}, nil
}

// Run plays every game and aggregates the outcomes. Games are independent and
// seeded from Config.Seed, so the aggregate does not depend on scheduling.
func (s *Simulator) Run(ctx context.Context) (*statistics.Aggregate, error) {
	var (
		mu  sync.Mutex
		agg statistics.Aggregate
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Games; i++ {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outcome, err := s.Play(seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}

			mu.Lock()
			agg.Add(outcome)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("games", agg.Games).
		Int("wins", agg.Wins).
		Float64("mean_misses", agg.MeanMisses()).
		Msg("Simulation complete")
	return &agg, nil
}

// Play runs a single game to completion or to the time limit
func (s *Simulator) Play(seed int64) (statistics.Outcome, error) {
	sched := NewVirtual(Epoch)
	holes := randutil.New(seed)
	botRng := randutil.New(randutil.Derive(seed, 1))

	id := sessionid.NewGenerator(sched.Now, holes).New()
	bot := NewBot(s.config.Bot, s.config.Rules, sched, botRng)
	bot.logger = s.logger.With().Str("session", id).Logger()

	ctrl, err := game.NewController(game.Config{
		Rules:     s.config.Rules,
		Scheduler: sched,
		Rand:      holes,
		Display:   bot,
		SessionID: id,
	})
	if err != nil {
		return statistics.Outcome{}, err
	}
	bot.Attach(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl.Start(ctx)
	reached := sched.Run(ctrl.Done(), Epoch.Add(s.config.MaxDuration))
	ctrl.Stop()

	result := ctrl.Result()
	if !result.Completed {
		s.logger.Debug().
			Int64("seed", seed).
			Str("session", result.SessionID).
			Int("score", result.Snapshot.Score).
			Dur("at", reached.Sub(Epoch)).
			Msg("Game abandoned")
	}

	return statistics.Outcome{
		Won:      result.Completed,
		Score:    result.Snapshot.Score,
		Misses:   result.Snapshot.Misses,
		Duration: result.Elapsed,
		Session:  result.Stats,
	}, nil
}
