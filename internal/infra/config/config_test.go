package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var optionalKeys = []string{
	"PRACTICUM_ENDPOINT", "POLL_INTERVAL", "PRACTICUM_TIMEOUT", "LOG_LEVEL", "ENVIRONMENT",
	"LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "METRICS_ADDR", "TELEGRAM_COMMANDS",
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PRACTICUM_TOKEN", "practicum-token")
	t.Setenv("TELEGRAM_TOKEN", "telegram-token")
	t.Setenv("TELEGRAM_CHAT_ID", "123456")
	for _, k := range optionalKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "practicum-token", cfg.PracticumToken)
	assert.Equal(t, "telegram-token", cfg.TelegramToken)
	assert.Equal(t, int64(123456), cfg.TelegramChatID)
	assert.Equal(t, DefaultEndpoint, cfg.PracticumEndpoint)
	assert.Equal(t, 600*time.Second, cfg.PollInterval)
	assert.Equal(t, DefaultPracticumTimeout, cfg.PracticumTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, 50, cfg.LogMaxSizeMB)
	assert.Equal(t, 5, cfg.LogMaxBackups)
	assert.Empty(t, cfg.MetricsAddr)
	assert.True(t, cfg.TelegramCommands)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("LOG_FILE", "")
	t.Setenv("METRICS_ADDR", ":9090")
	t.Setenv("TELEGRAM_COMMANDS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.False(t, cfg.TelegramCommands)
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"TELEGRAM_CHAT_ID":  "not-a-number",
		"POLL_INTERVAL":     "soon",
		"PRACTICUM_TIMEOUT": "-5s",
		"LOG_MAX_SIZE_MB":   "big",
		"TELEGRAM_COMMANDS": "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
