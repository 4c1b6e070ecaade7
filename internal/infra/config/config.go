package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEndpoint         = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultPollInterval     = 600 * time.Second
	DefaultPracticumTimeout = 30 * time.Second
	DefaultLogFile          = "homework_bot.log"
	DefaultLogMaxSizeMB     = 50
	DefaultLogMaxBackups    = 5
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken    string
	TelegramToken     string
	TelegramChatID    int64
	PracticumEndpoint string
	PracticumTimeout  time.Duration
	PollInterval      time.Duration
	LogLevel          string
	Environment       string
	LogFile           string // Empty disables the rotating file
	LogMaxSizeMB      int
	LogMaxBackups     int
	MetricsAddr       string // Empty disables the metrics/health server
	TelegramCommands  bool   // Long-poll Telegram for /start and /status
}

// Load reads configuration from environment variables and .env file (if present).
// A missing PRACTICUM_TOKEN, TELEGRAM_TOKEN or TELEGRAM_CHAT_ID is an error.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	var missing []string
	cfg.PracticumToken = os.Getenv("PRACTICUM_TOKEN")
	if cfg.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}

	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	cfg.PracticumEndpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultEndpoint
	}

	if cfg.PollInterval, err = durationEnv("POLL_INTERVAL", DefaultPollInterval); err != nil {
		return nil, err
	}
	if cfg.PracticumTimeout, err = durationEnv("PRACTICUM_TIMEOUT", DefaultPracticumTimeout); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.LogFile = DefaultLogFile
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if cfg.LogMaxSizeMB, err = intEnv("LOG_MAX_SIZE_MB", DefaultLogMaxSizeMB); err != nil {
		return nil, err
	}
	if cfg.LogMaxBackups, err = intEnv("LOG_MAX_BACKUPS", DefaultLogMaxBackups); err != nil {
		return nil, err
	}

	cfg.MetricsAddr = os.Getenv("METRICS_ADDR")

	cfg.TelegramCommands = true
	if v := os.Getenv("TELEGRAM_COMMANDS"); v != "" {
		cfg.TelegramCommands, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_COMMANDS: %w", err)
		}
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", key, d)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
