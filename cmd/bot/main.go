// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbot "github.com/go-telegram/bot"

	"mentionbot/internal/ai"
	"mentionbot/internal/bot"
	"mentionbot/internal/bot/handlers"
	"mentionbot/internal/config"
	"mentionbot/internal/logger"
	"mentionbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes all application components (config, logger, AI client,
// Telegram bot), runs the update loop until shutdown, and returns an exit
// code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.New(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	aiClient := ai.New(cfg.OpenAI, log)
	log.Info("AI client initialized", "model", cfg.OpenAI.Model, "base_url", cfg.OpenAI.BaseURL)

	router := handlers.NewRouter(handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		AI:     aiClient,
	})

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(router.Handler()),
	}
	tg, err := telegram.New(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	if err := telegram.RegisterCommands(ctx, tg, log); err != nil {
		log.Error("Failed to register Telegram commands", "error", err)
		return 1
	}

	app := bot.NewBot(log, tg)

	log.Info("Starting bot...", "model", cfg.OpenAI.Model)
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
