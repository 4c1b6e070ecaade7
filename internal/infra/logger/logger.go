// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance
var Log = logrus.New()

var rotating *lumberjack.Logger

// Init initializes the global logger based on application configuration.
// Output goes to stdout and, when cfg.LogFile is set, to a size-rotated file.
func Init(cfg *config.AppConfig) {
	var out io.Writer = os.Stdout
	rotating = nil
	if cfg.LogFile != "" {
		rotating = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB, // megabytes
			MaxBackups: cfg.LogMaxBackups,
		}
		out = io.MultiWriter(os.Stdout, rotating)
	}
	Log.SetOutput(out)

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'debug'. Error: %v", cfg.LogLevel, err)
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(level)
	}

	// Set Log Formatter
	if cfg.Environment == "production" || cfg.Environment == "staging" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			// Colors would end up as escape codes in the log file.
			DisableColors: cfg.LogFile != "",
		})
	}

	Log.Info("Logger initialized successfully.")
	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
	Log.Debugf("Log file: %q (max %d MB, %d backups)", cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups)
}

// Get returns the configured global logger.
func Get() *logrus.Logger {
	return Log
}

// Close flushes and closes the rotating log file, if any.
func Close() error {
	if rotating == nil {
		return nil
	}
	return rotating.Close()
}
