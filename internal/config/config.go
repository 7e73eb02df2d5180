// Package config loads the HCL configuration file shared by every command.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/rs/zerolog"

	"github.com/lox/whackamole/internal/fileutil"
	"github.com/lox/whackamole/internal/game"
)

// DefaultFilename is looked up in the working directory when no --config is given
const DefaultFilename = "whackamole.hcl"

// Config represents the complete configuration file
type Config struct {
	Game *GameSettings `hcl:"game,block"`
	Log  *LogSettings  `hcl:"log,block"`
	Bots []BotProfile  `hcl:"bot,block"`
}

// GameSettings contains the rules of play
type GameSettings struct {
	Rows        int   `hcl:"rows,optional"`
	Cols        int   `hcl:"cols,optional"`
	VisibleMS   int   `hcl:"mole_visible_ms,optional"`
	IntervalMS  int   `hcl:"spawn_interval_ms,optional"`
	TargetScore int   `hcl:"target_score,optional"`
	Seed        int64 `hcl:"seed,optional"` // 0 picks a seed from the clock
}

// LogSettings controls the log file written during play
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// BotProfile describes a simulated player
type BotProfile struct {
	Name       string   `hcl:"name,label"`
	ReactionMS int      `hcl:"reaction_ms"`
	JitterMS   int      `hcl:"jitter_ms,optional"`
	Accuracy   *float64 `hcl:"accuracy,optional"` // chance of clicking the right hole, unset means 1
}

// Reaction returns the bot's mean reaction time
func (b BotProfile) Reaction() time.Duration {
	return time.Duration(b.ReactionMS) * time.Millisecond
}

// HitChance returns the probability that the bot aims at the mole
func (b BotProfile) HitChance() float64 {
	if b.Accuracy == nil {
		return 1
	}
	return *b.Accuracy
}

// WithAccuracy returns a copy of b with the given accuracy
func (b BotProfile) WithAccuracy(accuracy float64) BotProfile {
	b.Accuracy = &accuracy
	return b
}

// Jitter returns the standard deviation of the bot's reaction time
func (b BotProfile) Jitter() time.Duration {
	return time.Duration(b.JitterMS) * time.Millisecond
}

// DefaultBots returns the built-in bot profiles
func DefaultBots() []BotProfile {
	return []BotProfile{
		BotProfile{Name: "rookie", ReactionMS: 700, JitterMS: 200}.WithAccuracy(0.75),
		BotProfile{Name: "casual", ReactionMS: 550, JitterMS: 150}.WithAccuracy(0.85),
		BotProfile{Name: "pro", ReactionMS: 380, JitterMS: 80}.WithAccuracy(0.95),
		BotProfile{Name: "perfect", ReactionMS: 200, JitterMS: 0}.WithAccuracy(1),
	}
}

// Default returns the default configuration
func Default() *Config {
	rules := game.DefaultRules()
	return &Config{
		Game: &GameSettings{
			Rows:        rules.Rows,
			Cols:        rules.Cols,
			VisibleMS:   int(rules.Visible / time.Millisecond),
			IntervalMS:  int(rules.Interval / time.Millisecond),
			TargetScore: rules.TargetScore,
		},
		Log: &LogSettings{
			Level: "info",
			File:  "whackamole.log",
		},
		Bots: DefaultBots(),
	}
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills zero values from Default
func (c *Config) applyDefaults() {
	def := Default()

	if c.Game == nil {
		c.Game = def.Game
	}
	if c.Game.Rows == 0 {
		c.Game.Rows = def.Game.Rows
	}
	if c.Game.Cols == 0 {
		c.Game.Cols = def.Game.Cols
	}
	if c.Game.VisibleMS == 0 {
		c.Game.VisibleMS = def.Game.VisibleMS
	}
	if c.Game.IntervalMS == 0 {
		c.Game.IntervalMS = def.Game.IntervalMS
	}
	if c.Game.TargetScore == 0 {
		c.Game.TargetScore = def.Game.TargetScore
	}

	if c.Log == nil {
		c.Log = def.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}

	// built-in bots remain available unless overridden by name
	for _, bot := range def.Bots {
		if _, ok := c.Bot(bot.Name); !ok {
			c.Bots = append(c.Bots, bot)
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	if !ValidLevel(c.Log.Level) {
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}

	seen := make(map[string]bool)
	for _, bot := range c.Bots {
		if seen[bot.Name] {
			return fmt.Errorf("bot %s: defined more than once", bot.Name)
		}
		seen[bot.Name] = true

		if bot.ReactionMS <= 0 {
			return fmt.Errorf("bot %s: reaction_ms must be positive", bot.Name)
		}
		if bot.JitterMS < 0 {
			return fmt.Errorf("bot %s: jitter_ms must not be negative", bot.Name)
		}
		if chance := bot.HitChance(); chance < 0 || chance > 1 {
			return fmt.Errorf("bot %s: accuracy must be between 0 and 1", bot.Name)
		}
	}

	return nil
}

// ValidLevel reports whether level is understood by the loggers. Trace only
// adds detail to headless runs; interactive play logs it as debug.
func ValidLevel(level string) bool {
	if _, err := log.ParseLevel(level); err == nil {
		return true
	}
	return level == zerolog.LevelTraceValue
}

// Rules converts the game settings into game rules
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Rows:        c.Game.Rows,
		Cols:        c.Game.Cols,
		Visible:     time.Duration(c.Game.VisibleMS) * time.Millisecond,
		Interval:    time.Duration(c.Game.IntervalMS) * time.Millisecond,
		TargetScore: c.Game.TargetScore,
	}
}

// Bot returns a bot profile by name
func (c *Config) Bot(name string) (BotProfile, bool) {
	for _, bot := range c.Bots {
		if bot.Name == name {
			return bot, true
		}
	}
	return BotProfile{}, false
}

// BotNames returns the names of every configured bot
func (c *Config) BotNames() []string {
	names := make([]string, 0, len(c.Bots))
	for _, bot := range c.Bots {
		names = append(names, bot.Name)
	}
	return names
}

// Encode renders the configuration as HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return hclwrite.Format(f.Bytes())
}

// Write saves the configuration atomically
func (c *Config) Write(filename string) error {
	if err := fileutil.WriteFileAtomic(filename, c.Encode(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
