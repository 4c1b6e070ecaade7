package logger

import (
	"os"
	"path/filepath"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	Init(&config.AppConfig{
		LogLevel:      "debug",
		Environment:   "production",
		LogFile:       path,
		LogMaxSizeMB:  1,
		LogMaxBackups: 1,
	})
	t.Cleanup(func() {
		_ = Close()
		rotating = nil
		Log.SetOutput(os.Stdout)
	})

	Log.WithField("component", "test").Debug("hello from test")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Equal(t, logrus.DebugLevel, Get().GetLevel())
}

func TestInit_InvalidLevelFallsBackToDebug(t *testing.T) {
	Init(&config.AppConfig{LogLevel: "chatty", Environment: "development"})
	t.Cleanup(func() { Log.SetOutput(os.Stdout) })

	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	assert.NoError(t, Close())
}
