package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// commandHandler replies to recognized commands with the configured greeting.
// It makes no external calls beyond the outbound send.
type commandHandler struct {
	deps HandlerDeps
}

func (h commandHandler) Handle(ctx context.Context, s Sender, msg *models.Message, intent Intent) error {
	log := h.deps.Logger.With("handler", "command")
	chatID := msg.Chat.ID

	log.InfoContext(ctx, "Handling command", "command", intent.Command, "chat_id", chatID)

	if _, err := s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   h.deps.Config.Bot.Messages.Greeting,
	}); err != nil {
		return fmt.Errorf("send greeting for /%s: %w", intent.Command, err)
	}

	return nil
}
