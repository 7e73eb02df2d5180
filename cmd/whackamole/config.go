package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/whackamole/internal/config"
)

// ConfigCmd groups the config subcommands
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write the default config file"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
}

// ConfigInitCmd writes a fresh config file
type ConfigInitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	if _, err := os.Stat(g.Config); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", g.Config)
	}
	if err := config.Default().Write(g.Config); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", g.Config)
	return nil
}

// ConfigShowCmd prints the configuration after defaults are applied
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(g *Globals) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return writeConfig(os.Stdout, cfg)
}

func writeConfig(w io.Writer, cfg *config.Config) error {
	if _, err := w.Write(cfg.Encode()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
