package main

import (
	"fmt"

	"github.com/lox/whackamole/internal/config"
)

// RulesFlags override the game block of the config file
type RulesFlags struct {
	Rows       *int   `help:"Grid rows"`
	Cols       *int   `help:"Grid columns"`
	VisibleMs  *int   `name:"visible-ms" help:"How long a mole stays up, in milliseconds"`
	IntervalMs *int   `name:"interval-ms" help:"Time between moles, in milliseconds"`
	Target     *int   `help:"Hits needed to win"`
	Seed       *int64 `help:"Deterministic RNG seed (optional)"`
}

func (f RulesFlags) apply(cfg *config.Config) {
	if f.Rows != nil {
		cfg.Game.Rows = *f.Rows
	}
	if f.Cols != nil {
		cfg.Game.Cols = *f.Cols
	}
	if f.VisibleMs != nil {
		cfg.Game.VisibleMS = *f.VisibleMs
	}
	if f.IntervalMs != nil {
		cfg.Game.IntervalMS = *f.IntervalMs
	}
	if f.Target != nil {
		cfg.Game.TargetScore = *f.Target
	}
	if f.Seed != nil {
		cfg.Game.Seed = *f.Seed
	}
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(g *Globals, overrides RulesFlags) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	overrides.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
