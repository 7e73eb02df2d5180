package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/whackamole/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" type:"path" default:"${config_file}" help:"Path to the HCL config file (missing file uses defaults)"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play a game in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play headless games with bots and report statistics"`
	Settings ConfigCmd        `cmd:"" name:"config" help:"Create or inspect the config file"`
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("whackamole"),
		kong.Description("Whack-A-Mole for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFilename,
		},
	)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
