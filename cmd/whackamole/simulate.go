package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/whackamole/cmd/whackamole/shared"
	"github.com/lox/whackamole/internal/config"
	"github.com/lox/whackamole/internal/randutil"
	"github.com/lox/whackamole/internal/simulator"
	"github.com/lox/whackamole/internal/statistics"
)

// SimulateCmd plays batches of bot games on a virtual clock
type SimulateCmd struct {
	RulesFlags `embed:""`

	Games       int           `short:"n" default:"1000" help:"Games to play per bot"`
	Bots        []string      `name:"bot" default:"casual" help:"Bot profiles to run, or 'all'"`
	Workers     int           `default:"0" help:"Concurrent games (0 uses GOMAXPROCS)"`
	MaxDuration time.Duration `name:"max-duration" default:"5m" help:"Virtual time after which a game is abandoned"`
	JSONLogs    bool          `name:"json-logs" help:"Log as JSON lines instead of console output"`
}

type botResult struct {
	bot config.BotProfile
	agg *statistics.Aggregate
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, c.RulesFlags)
	if err != nil {
		return err
	}

	logger := shared.SetupLogger(os.Stderr, shared.ConsoleOptions{
		Level:   cfg.Log.Level,
		Debug:   g.Debug,
		JSON:    c.JSONLogs,
		NoColor: g.NoColor,
	})

	bots, err := c.resolveBots(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandlerWithLogger(logger)
	defer cancel()

	seed := randutil.Seed(cfg.Game.Seed)
	logger.Info().
		Int("games", c.Games).
		Strs("bots", botNames(bots)).
		Int64("seed", seed).
		Msg("Starting simulation")

	results := make([]botResult, 0, len(bots))
	for _, bot := range bots {
		sim, err := simulator.New(simulator.Config{
			Rules:       cfg.Rules(),
			Bot:         bot,
			Games:       c.Games,
			Seed:        seed,
			Workers:     c.Workers,
			MaxDuration: c.MaxDuration,
			Logger:      &logger,
		})
		if err != nil {
			return err
		}

		start := time.Now()
		agg, err := sim.Run(ctx)
		if err != nil {
			return fmt.Errorf("bot %s: %w", bot.Name, err)
		}
		logger.Debug().Str("bot", bot.Name).Dur("took", time.Since(start)).Msg("Bot finished")
		results = append(results, botResult{bot: bot, agg: agg})
	}

	fmt.Println(renderSimulation(results))
	return nil
}

func (c *SimulateCmd) resolveBots(cfg *config.Config) ([]config.BotProfile, error) {
	var bots []config.BotProfile
	for _, name := range c.Bots {
		if name == "all" {
			return cfg.Bots, nil
		}
		bot, ok := cfg.Bot(name)
		if !ok {
			return nil, fmt.Errorf("unknown bot %q (available: %v)", name, cfg.BotNames())
		}
		bots = append(bots, bot)
	}
	return bots, nil
}

func botNames(bots []config.BotProfile) []string {
	names := make([]string, 0, len(bots))
	for _, bot := range bots {
		names = append(names, bot.Name)
	}
	return names
}

func renderSimulation(results []botResult) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Bot", "Games", "Win rate", "Abandoned", "Score", "Misses", "± sd", "Timeouts", "Wrong", "Reaction", "Median", "Time to win")

	for _, r := range results {
		a := r.agg
		t.Row(
			r.bot.Name,
			fmt.Sprintf("%d", a.Games),
			fmt.Sprintf("%.1f%%", a.WinRate()*100),
			fmt.Sprintf("%d", a.Abandoned()),
			fmt.Sprintf("%.2f", a.MeanScore()),
			fmt.Sprintf("%.2f", a.MeanMisses()),
			fmt.Sprintf("%.2f", a.MissesStdDev()),
			fmt.Sprintf("%d", a.Timeouts),
			fmt.Sprintf("%d", a.WrongHole+a.EmptyHole),
			a.MeanReaction().Round(time.Millisecond).String(),
			a.MedianReaction().Round(time.Millisecond).String(),
			a.MeanDuration().Round(100*time.Millisecond).String(),
		)
	}
	return t.Render()
}
