package handlers

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// IntentKind identifies what should be done with an inbound message.
type IntentKind int

const (
	// IntentIgnore marks messages the bot takes no action on.
	IntentIgnore IntentKind = iota
	// IntentCommand marks messages carrying a recognized bot command.
	IntentCommand
	// IntentMention marks messages that mention the bot.
	IntentMention
)

// Intent is the classified purpose of one inbound message. Command and Args
// are only set when Kind is IntentCommand.
type Intent struct {
	Kind    IntentKind
	Command string
	Args    string
}

// commands is the fixed set of recognized command names. Both produce the
// configured greeting.
var commands = map[string]struct{}{
	"start": {},
	"help":  {},
}

// fallbackText substitutes for messages that carry no text, so a mention
// without text still produces a completion request.
const fallbackText = "Hello"

// Classify derives exactly one Intent from an inbound message. Command
// detection is checked before mention detection, so a message that is both a
// recognized command and contains a mention entity is treated as a command.
// Mention detection depends only on entity kinds, never on text content.
func Classify(msg *models.Message) Intent {
	if msg == nil {
		return Intent{Kind: IntentIgnore}
	}

	if name, args, ok := parseCommand(msg.Text); ok {
		return Intent{Kind: IntentCommand, Command: name, Args: args}
	}

	for _, e := range msg.Entities {
		if e.Type == models.MessageEntityTypeMention {
			return Intent{Kind: IntentMention}
		}
	}
	for _, e := range msg.CaptionEntities {
		if e.Type == models.MessageEntityTypeMention {
			return Intent{Kind: IntentMention}
		}
	}

	return Intent{Kind: IntentIgnore}
}

// parseCommand parses text under the fixed command grammar: a leading
// "/name" token, case-normalized, with an optional @botname suffix. Unknown
// names and unparseable text are silently treated as non-commands.
func parseCommand(text string) (name, args string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", "", false
	}

	name = strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	name = strings.ToLower(name)

	if _, known := commands[name]; !known {
		return "", "", false
	}

	return name, strings.Join(fields[1:], " "), true
}

// MessageText extracts the text to forward to the completion service,
// falling back to the caption and then to a fixed placeholder rather than
// failing on messages without text.
func MessageText(msg *models.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	if msg.Caption != "" {
		return msg.Caption
	}
	return fallbackText
}
