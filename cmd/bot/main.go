package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/httpserver"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/metrics"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet; logrus defaults to stderr.
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	defer logger.Close()
	mainLogger := logger.Log.WithField("component", "main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Chat ID: %d, Poll interval: %s",
		cfg.LogLevel, cfg.Environment, cfg.TelegramChatID, cfg.PollInterval)

	metrics.Init()

	// Initialize Telegram Bot. No network call here: an unreachable Telegram
	// must not stop the poller.
	bot, err := telegram.NewBot(cfg.TelegramToken, "", func(err error, c telebot.Context) { // Global error handler
		logCtx := logger.Log.WithField("component", "telebot").WithError(err)
		if c != nil && c.Chat() != nil {
			logCtx = logCtx.WithField("chat_id", c.Chat().ID).WithField("text", c.Text())
		}
		logCtx.Error("Telegram bot error")
	})
	if err != nil {
		mainLogger.Fatalf("Could not create Telegram bot: %v", err)
	}
	telegramClient := telegram.NewTelebotAdapter(bot)

	practicumClient := practicum.NewClient(
		cfg.PracticumEndpoint,
		cfg.PracticumToken,
		&http.Client{Timeout: cfg.PracticumTimeout},
		logger.Log.WithField("component", "practicum"),
	)

	session := app.NewSession(time.Now())
	statusService := app.NewStatusServiceImpl(
		practicumClient,
		telegramClient,
		cfg.TelegramChatID,
		session,
		logger.Log.WithField("component", "status_service"),
	)
	mainLogger.Info("Status service initialized.")

	pollScheduler := scheduler.NewPollScheduler(
		statusService,
		logger.Log.WithField("component", "scheduler"),
		cfg.PollInterval,
		cfg.PollInterval,
	)
	if err := pollScheduler.Start(); err != nil {
		mainLogger.Fatalf("Could not start poll scheduler: %v", err)
	}

	if cfg.TelegramCommands {
		telegram.RegisterBotCommands(bot, cfg.TelegramChatID, statusService, cfg.PollInterval,
			logger.Log.WithField("component", "telegram"))
		if err := telegram.LoadIdentity(bot); err != nil {
			mainLogger.WithError(err).Warn("Could not fetch bot identity, commands with @botname will not match")
		}
		go bot.Start()
		mainLogger.Info("Telegram command handlers registered, long polling started.")
	}

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		srv = httpserver.NewServer(cfg.MetricsAddr, httpserver.NewRouter(statusService, logger.Log.WithField("component", "http")))
		go func() {
			mainLogger.Infof("Metrics server listening on %s", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				mainLogger.WithError(err).Error("Metrics server stopped")
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	pollScheduler.Stop()
	if cfg.TelegramCommands {
		bot.Stop()
	}
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			mainLogger.WithError(err).Warn("Metrics server shutdown failed")
		}
	}
	mainLogger.Info("Application shut down gracefully.")
}
