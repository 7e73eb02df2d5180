package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

// NewLogger creates a logger in the house style. Trace maps to debug and
// unknown levels fall back to info.
func NewLogger(w io.Writer, level string, debug bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if debug || level == zerolog.LevelTraceValue {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           lvl,
	})
}

// NewPlainLogger is NewLogger without colors, for files and --no-color
func NewPlainLogger(w io.Writer, level string, debug bool) *log.Logger {
	logger := NewLogger(w, level, debug)
	logger.SetColorProfile(termenv.Ascii)
	return logger
}

// OpenLogFile truncates and opens the log file used while the TUI owns the terminal
func OpenLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// ConsoleOptions controls the headless logger
type ConsoleOptions struct {
	Level   string
	Debug   bool
	JSON    bool
	NoColor bool
}

// SetupLogger configures zerolog for headless commands: pretty console output
// by default, one JSON object per line with JSON set.
func SetupLogger(w io.Writer, opts ConsoleOptions) zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if opts.Debug && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	if !opts.JSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: opts.NoColor}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}
