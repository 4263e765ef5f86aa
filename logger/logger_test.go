package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "server.log")

	require.NoError(t, Init(Config{Level: "debug", File: logFile}))
	Info("schema ready", "engine", "SQLite")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "schema ready")
	assert.Contains(t, string(data), "engine=SQLite")
	assert.Equal(t, log.DebugLevel, Logger.GetLevel())
}

func TestInitFallsBackToInfoLevel(t *testing.T) {
	require.NoError(t, Init(Config{Level: "loud"}))
	assert.Equal(t, log.InfoLevel, Logger.GetLevel())
}
