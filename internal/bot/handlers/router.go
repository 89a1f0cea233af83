package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Router dispatches each inbound message to exactly one handler branch based
// on its classified intent. It holds no state beyond the shared read-only
// dependencies; messages are handled independently with no ordering
// guarantee between them.
type Router struct {
	deps    HandlerDeps
	logger  *slog.Logger
	command commandHandler
	mention mentionHandler
}

// NewRouter creates a Router over the shared handler dependencies.
func NewRouter(deps HandlerDeps) *Router {
	return &Router{
		deps:    deps,
		logger:  deps.Logger.With("component", "router"),
		command: commandHandler{deps},
		mention: mentionHandler{deps},
	}
}

// Handler adapts the router to the bot library's handler signature, for
// installation as the default update handler.
func (r *Router) Handler() bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		r.Dispatch(ctx, b, update)
	}
}

// Dispatch classifies the update's message and invokes the matching handler.
// Handler errors (outbound-send failures) are logged here and never abort
// the update loop: a single message's failure must not halt dispatch.
func (r *Router) Dispatch(ctx context.Context, s Sender, update *models.Update) {
	if update == nil || update.Message == nil {
		return
	}
	msg := update.Message

	var err error
	switch intent := Classify(msg); intent.Kind {
	case IntentCommand:
		err = r.command.Handle(ctx, s, msg, intent)
	case IntentMention:
		err = r.mention.Handle(ctx, s, msg)
	default:
		r.logger.DebugContext(ctx, "Ignoring message", "chat_id", msg.Chat.ID, "message_id", msg.ID)
	}

	if err != nil {
		r.logger.ErrorContext(ctx, "Handler failed", "error", err, "chat_id", msg.Chat.ID, "message_id", msg.ID)
	}
}
