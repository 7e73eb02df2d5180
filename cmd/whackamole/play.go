package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/whackamole/cmd/whackamole/shared"
	"github.com/lox/whackamole/internal/clock"
	"github.com/lox/whackamole/internal/game"
	"github.com/lox/whackamole/internal/randutil"
	"github.com/lox/whackamole/internal/report"
	"github.com/lox/whackamole/internal/tui"
)

var summaryStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#1B5E20")).
	Bold(true)

// PlayCmd runs an interactive game
type PlayCmd struct {
	RulesFlags `embed:""`

	Results string `type:"path" help:"Write a JSON summary of the game to this file"`
	LogFile string `name:"log-file" type:"path" help:"Log file (defaults to the config's log.file)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, c.RulesFlags)
	if err != nil {
		return err
	}

	logPath := cfg.Log.File
	if c.LogFile != "" {
		logPath = c.LogFile
	}
	logFile, err := shared.OpenLogFile(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger := shared.NewPlainLogger(logFile, cfg.Log.Level, g.Debug).WithPrefix("MAIN")

	seed := randutil.Seed(cfg.Game.Seed)
	logger.Info("Using seed", "seed", seed)

	feed := tui.NewFeed()
	ctrl, err := game.NewController(game.Config{
		Rules:     cfg.Rules(),
		Scheduler: clock.NewReal(),
		Rand:      randutil.New(seed),
		Display:   feed,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	model := tui.NewModel(ctrl, feed, logger)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := shared.SetupSignalHandler()
	defer cancel()

	ctrl.Start(ctx)
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		ctrl.Stop()
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	ctrl.Stop()

	result := ctrl.Result()
	fmt.Println(renderSummary(result))

	if c.Results != "" {
		if err := report.Write(c.Results, report.New(result, seed)); err != nil {
			return err
		}
		logger.Info("Wrote results", "path", c.Results)
	}
	return nil
}

func renderSummary(result game.Result) string {
	outcome := "Game abandoned"
	if result.Completed {
		outcome = "You won!"
	}

	stats := result.Stats
	return summaryStyle.Render(fmt.Sprintf(
		"%s Score: %d  Misses: %d  Accuracy: %.0f%%  Mean reaction: %s  Time: %s",
		outcome,
		result.Snapshot.Score,
		result.Snapshot.Misses,
		stats.Accuracy()*100,
		stats.MeanReaction().Round(time.Millisecond),
		result.Elapsed.Round(100*time.Millisecond),
	))
}
