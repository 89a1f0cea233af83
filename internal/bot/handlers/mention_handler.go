package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// mentionHandler responds to messages that mention the bot. It signals typing
// status, requests a completion for the message text, and replies with the
// generated content or a fixed apology on failure.
type mentionHandler struct {
	deps HandlerDeps
}

func (h mentionHandler) Handle(ctx context.Context, s Sender, msg *models.Message) error {
	deps := h.deps
	log := deps.Logger.With("handler", "mention")
	chatID := msg.Chat.ID

	text := MessageText(msg)

	log.InfoContext(ctx, "Handling mention", "chat_id", chatID, "message_id", msg.ID)

	// The typing signal precedes any user-visible content; its failure
	// surfaces to the router rather than being swallowed here.
	if _, err := s.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	}); err != nil {
		return fmt.Errorf("send typing action: %w", err)
	}

	content, err := deps.AI.Complete(ctx, deps.Config.OpenAI.Model, text)
	if err != nil {
		// Operators get the underlying detail; the user only sees the
		// fixed apology.
		log.ErrorContext(ctx, "Completion request failed", "error", err, "chat_id", chatID)

		if _, sendErr := s.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   deps.Config.Bot.Messages.CompletionError,
		}); sendErr != nil {
			return fmt.Errorf("send completion error reply: %w", sendErr)
		}
		return nil
	}

	if _, err := s.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   content,
	}); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}

	log.DebugContext(ctx, "Sent completion reply", "chat_id", chatID)
	return nil
}
