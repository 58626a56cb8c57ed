package bot

import (
	"context"
	"strings"

	"marquee/internal/flow"
	"marquee/internal/logging"
	"marquee/internal/telegram"
)

func (b *Bot) handleMessage(ctx context.Context, msg telegram.Message) {
	chatID := msg.Chat.ID
	ctx = logging.WithChatID(ctx, chatID)
	logger := logging.WithContext(ctx, b.logger)

	// Photo messages carry their text in the caption.
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		text = strings.TrimSpace(msg.Caption)
	}
	if text == "" {
		return
	}

	if command, addressed := parseCommand(text, b.username); addressed {
		logger.Info("command received", logging.String(logging.FieldEvent, command))
		switch command {
		case "start", "help":
			b.render(ctx, chatID, []flow.View{b.flow.Help()})
		case "reset":
			b.render(ctx, chatID, []flow.View{b.flow.Reset(ctx, chatID)})
		case "list":
			b.render(ctx, chatID, []flow.View{b.flow.List(chatID)})
		case "vote":
			b.render(ctx, chatID, b.flow.Vote(ctx, chatID))
		default:
			logger.Debug("ignoring unknown command")
		}
		return
	}

	logger.Info("search requested", logging.String(logging.FieldEvent, "search"))
	b.render(ctx, chatID, b.flow.Search(ctx, chatID, text))
}

func (b *Bot) handleCallback(ctx context.Context, query telegram.CallbackQuery) {
	if query.Message == nil {
		// Button from a message too old for the API to reference; nothing to
		// render into, just stop the client spinner.
		if err := b.transport.AnswerCallbackQuery(ctx, query.ID, ""); err != nil {
			b.logger.Warn("callback answer failed", logging.Error(err))
		}
		return
	}
	chatID := query.Message.Chat.ID
	ctx = logging.WithChatID(ctx, chatID)
	logger := logging.WithContext(ctx, b.logger)
	logger.Info("callback received", logging.String(logging.FieldEvent, "callback"))

	ack, views := b.flow.Callback(ctx, chatID, query.Data)
	if err := b.transport.AnswerCallbackQuery(ctx, query.ID, ack); err != nil {
		logger.Warn("callback answer failed", logging.Error(err))
	}
	b.render(ctx, chatID, views)
}

// parseCommand extracts the command name from a leading /command token,
// tolerating the @botname suffix Telegram appends in group chats. addressed
// is false for plain text and for commands aimed at a different bot.
func parseCommand(text, botUsername string) (command string, addressed bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	token := strings.Fields(text)[0][1:]
	if token == "" {
		return "", false
	}
	if at := strings.IndexByte(token, '@'); at >= 0 {
		if botUsername != "" && !strings.EqualFold(token[at+1:], botUsername) {
			return "", false
		}
		token = token[:at]
	}
	return strings.ToLower(token), true
}
