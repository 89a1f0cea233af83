package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentionbot/internal/bot/handlers"
	"mentionbot/internal/config"
)

const (
	testGreeting = "Hello! I'm an AI assistant bot using test-model. Mention me (@bot_username) in a message to talk to me."
	testApology  = "Sorry, I encountered an error while processing your request."
)

// fakeSender records outbound actions and can be told to fail.
type fakeSender struct {
	messages  []sentMessage
	actions   []sentAction
	sendErr   error
	actionErr error
}

type sentMessage struct {
	chatID int64
	text   string
}

type sentAction struct {
	chatID int64
	action models.ChatAction
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.messages = append(f.messages, sentMessage{chatID: params.ChatID.(int64), text: params.Text})
	return &models.Message{ID: len(f.messages)}, nil
}

func (f *fakeSender) SendChatAction(_ context.Context, params *bot.SendChatActionParams) (bool, error) {
	if f.actionErr != nil {
		return false, f.actionErr
	}
	f.actions = append(f.actions, sentAction{chatID: params.ChatID.(int64), action: params.Action})
	return true, nil
}

// fakeAI is a canned completion client.
type fakeAI struct {
	reply     string
	err       error
	calls     int
	lastModel string
	lastText  string
}

func (f *fakeAI) Complete(_ context.Context, model, text string) (string, error) {
	f.calls++
	f.lastModel = model
	f.lastText = text
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestRouter(aiClient *fakeAI, logBuf *bytes.Buffer) *handlers.Router {
	cfg := &config.Config{
		OpenAI: config.OpenAIConfig{Model: "test-model"},
		Bot: config.BotConfig{
			Messages: config.BotMessages{
				Greeting:        testGreeting,
				CompletionError: testApology,
			},
		},
	}

	var out = logBuf
	if out == nil {
		out = &bytes.Buffer{}
	}
	log := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return handlers.NewRouter(handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		AI:     aiClient,
	})
}

func messageUpdate(msg *models.Message) *models.Update {
	return &models.Update{ID: 1, Message: msg}
}

func TestDispatchCommandRepliesWithGreeting(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	aiClient := &fakeAI{reply: "unused"}
	router := newTestRouter(aiClient, nil)

	router.Dispatch(context.Background(), sender, messageUpdate(&models.Message{
		Text: "/start",
		Chat: models.Chat{ID: 42},
	}))

	require.Len(t, sender.messages, 1)
	assert.Equal(t, int64(42), sender.messages[0].chatID)
	assert.Equal(t, testGreeting, sender.messages[0].text)
	assert.Empty(t, sender.actions, "commands must not signal typing")
	assert.Zero(t, aiClient.calls, "commands must not call the completion service")
}

func TestDispatchHelpProducesSameGreeting(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	router := newTestRouter(&fakeAI{}, nil)

	router.Dispatch(context.Background(), sender, messageUpdate(&models.Message{
		Text: "/help",
		Chat: models.Chat{ID: 7},
	}))

	require.Len(t, sender.messages, 1)
	assert.Equal(t, testGreeting, sender.messages[0].text)
}

func TestDispatchMentionRepliesWithCompletion(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	aiClient := &fakeAI{reply: "It's sunny."}
	router := newTestRouter(aiClient, nil)

	router.Dispatch(context.Background(), sender, messageUpdate(&models.Message{
		Text:     "@bot what's the weather",
		Chat:     models.Chat{ID: 99},
		Entities: []models.MessageEntity{{Type: models.MessageEntityTypeMention, Length: 4}},
	}))

	require.Len(t, sender.actions, 1, "exactly one typing signal expected")
	assert.Equal(t, int64(99), sender.actions[0].chatID)
	assert.Equal(t, models.ChatActionTyping, sender.actions[0].action)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, int64(99), sender.messages[0].chatID)
	assert.Equal(t, "It's sunny.", sender.messages[0].text)

	assert.Equal(t, 1, aiClient.calls)
	assert.Equal(t, "test-model", aiClient.lastModel)
	assert.Equal(t, "@bot what's the weather", aiClient.lastText)
}

func TestDispatchMentionWithoutTextUsesPlaceholder(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	aiClient := &fakeAI{reply: "hi"}
	router := newTestRouter(aiClient, nil)

	router.Dispatch(context.Background(), sender, messageUpdate(&models.Message{
		Chat:     models.Chat{ID: 5},
		Entities: []models.MessageEntity{{Type: models.MessageEntityTypeMention, Length: 4}},
	}))

	assert.Equal(t, "Hello", aiClient.lastText)
	require.Len(t, sender.messages, 1)
	assert.Equal(t, "hi", sender.messages[0].text)
}

func TestDispatchMentionCompletionFailureSendsApology(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	sender := &fakeSender{}
	aiClient := &fakeAI{err: errors.New("connection refused")}
	router := newTestRouter(aiClient, &logBuf)

	router.Dispatch(context.Background(), sender, messageUpdate(&models.Message{
		Text:     "@bot hi",
		Chat:     models.Chat{ID: 13},
		Entities: []models.MessageEntity{{Type: models.MessageEntityTypeMention, Length: 4}},
	}))

	require.Len(t, sender.actions, 1, "typing signal still precedes the failure")
	require.Len(t, sender.messages, 1)
	assert.Equal(t, testApology, sender.messages[0].text,
		"user sees the fixed apology, never the raw error")

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "level=ERROR")
	assert.Contains(t, logOutput, "connection refused",
		"operators get the underlying detail in the log")
}

func TestDispatchTypingFailurePropagatesToRouter(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	sender := &fakeSender{actionErr: errors.New("network down")}
	aiClient := &fakeAI{reply: "never sent"}
	router := newTestRouter(aiClient, &logBuf)

	router.Dispatch(context.Background(), sender, messageUpdate(&models.Message{
		Text:     "@bot hi",
		Chat:     models.Chat{ID: 13},
		Entities: []models.MessageEntity{{Type: models.MessageEntityTypeMention, Length: 4}},
	}))

	assert.Empty(t, sender.messages, "no reply after a failed typing signal")
	assert.Zero(t, aiClient.calls, "completion is not requested after a failed typing signal")
	assert.Contains(t, logBuf.String(), "network down", "router logs the handler failure")
}

func TestDispatchOutboundSendFailureIsLoggedNotFatal(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	sender := &fakeSender{sendErr: errors.New("send failed")}
	router := newTestRouter(&fakeAI{}, &logBuf)

	// Must not panic; the dispatch loop continues with later messages.
	router.Dispatch(context.Background(), sender, messageUpdate(&models.Message{
		Text: "/start",
		Chat: models.Chat{ID: 42},
	}))

	assert.Contains(t, logBuf.String(), "send failed")
}

func TestDispatchIgnoresUnclassifiedMessages(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	aiClient := &fakeAI{}
	router := newTestRouter(aiClient, nil)

	router.Dispatch(context.Background(), sender, messageUpdate(&models.Message{
		Chat: models.Chat{ID: 8},
	}))
	router.Dispatch(context.Background(), sender, messageUpdate(&models.Message{
		Text: "just chatting",
		Chat: models.Chat{ID: 8},
	}))
	router.Dispatch(context.Background(), sender, &models.Update{ID: 3})
	router.Dispatch(context.Background(), sender, nil)

	assert.Empty(t, sender.messages, "no outbound action for ignorable messages")
	assert.Empty(t, sender.actions)
	assert.Zero(t, aiClient.calls)
}
