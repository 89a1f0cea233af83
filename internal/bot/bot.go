// Package bot implements lifecycle management for the Telegram listener.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"
)

// Bot owns the long-lived Telegram update listener.
type Bot struct {
	logger *slog.Logger
	tgBot  *tgbot.Bot
}

// NewBot wraps a configured Telegram bot instance for lifecycle management.
func NewBot(logger *slog.Logger, tgBot *tgbot.Bot) *Bot {
	return &Bot{
		logger: logger.With("component", "bot_orchestrator"),
		tgBot:  tgBot,
	}
}

// Run starts the Telegram listener and blocks until the context is cancelled
// or the listener stops on its own. Context cancellation is a clean stop.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.tgBot.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")

			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
