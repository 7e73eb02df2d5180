package shared

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, ConsoleOptions{Level: "info", JSON: true})

	logger.Debug().Msg("hidden")
	logger.Info().Int("games", 3).Msg("Starting simulation")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Starting simulation", entry["message"])
	assert.Equal(t, float64(3), entry["games"])
	assert.Contains(t, entry, "time")
}

func TestSetupLoggerDebugOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, ConsoleOptions{Level: "error", Debug: true, NoColor: true})

	logger.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "DBG")
}

func TestSetupLoggerUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, ConsoleOptions{Level: "chatty", JSON: true})

	logger.Debug().Msg("dropped")
	logger.Info().Msg("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestSetupLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, ConsoleOptions{Level: "trace", Debug: true, JSON: true})

	logger.Trace().Msg("Bot clicked")
	assert.Contains(t, buf.String(), `"level":"trace"`)
	assert.Contains(t, buf.String(), "Bot clicked")
}

func TestNewLoggerTraceIsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewPlainLogger(&buf, "trace", false)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}
