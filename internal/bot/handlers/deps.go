package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"mentionbot/internal/ai"
	"mentionbot/internal/config"
)

// HandlerDeps provides dependencies for message handlers. It is built once at
// startup and never mutated, so it is safe to share across concurrent
// handler invocations.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	AI     ai.Client
}

// Sender is the outbound side of the chat platform: it delivers text replies
// and transient status signals to a conversation. *bot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}
