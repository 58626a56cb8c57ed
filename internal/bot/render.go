package bot

import (
	"context"
	"strconv"

	"marquee/internal/flow"
	"marquee/internal/logging"
	"marquee/internal/telegram"
)

const parseModeHTML = "HTML"

func (b *Bot) render(ctx context.Context, chatID int64, views []flow.View) {
	logger := logging.WithContext(ctx, b.logger)
	for _, view := range views {
		if err := b.renderView(ctx, chatID, view); err != nil {
			logger.Error("render failed", logging.Error(err))
		}
	}
}

func (b *Bot) renderView(ctx context.Context, chatID int64, view flow.View) error {
	switch v := view.(type) {
	case flow.Notice:
		_, err := b.transport.SendMessage(ctx, telegram.OutgoingMessage{ChatID: chatID, Text: v.Text})
		return err
	case flow.SearchView:
		if _, err := b.transport.SendMessage(ctx, telegram.OutgoingMessage{
			ChatID:                chatID,
			Text:                  v.Text,
			ParseMode:             parseModeHTML,
			DisableWebPagePreview: true,
		}); err != nil {
			return err
		}
		if len(v.Buttons) == 0 {
			return nil
		}
		_, err := b.transport.SendMessage(ctx, telegram.OutgoingMessage{
			ChatID:      chatID,
			Text:        v.Prompt,
			ReplyMarkup: buttonColumn(v.Buttons),
		})
		return err
	case flow.ListView:
		_, err := b.transport.SendMessage(ctx, telegram.OutgoingMessage{
			ChatID:      chatID,
			Text:        v.Text,
			ParseMode:   parseModeHTML,
			ReplyMarkup: buttonGrid(v.Rows),
		})
		return err
	case flow.DetailView:
		return b.renderDetail(ctx, chatID, v)
	case flow.VoteView:
		return b.renderVote(ctx, chatID, v)
	}
	return nil
}

func (b *Bot) renderDetail(ctx context.Context, chatID int64, v flow.DetailView) error {
	if _, err := b.transport.SendMessage(ctx, telegram.OutgoingMessage{
		ChatID:    chatID,
		Text:      v.Text,
		ParseMode: parseModeHTML,
	}); err != nil {
		return err
	}
	if v.PosterPath == "" {
		return nil
	}
	logger := logging.WithContext(ctx, b.logger)
	data, err := b.posters.FetchImage(ctx, b.posters.ImageURL(v.PosterPath))
	if err != nil {
		// Poster delivery is best effort; the text already went out.
		logger.Warn("poster fetch failed", logging.Error(err))
		return nil
	}
	if _, err := b.transport.SendPhoto(ctx, chatID, "", "", telegram.Photo{Name: "poster.jpg", Data: data}); err != nil {
		logger.Warn("poster send failed", logging.Error(err))
	}
	return nil
}

// renderVote emits the vote bundle in its fixed order: poll, poster album,
// synopsis chunks, trailer digest, attribution. A failed poll aborts the
// bundle; everything after it is best effort.
func (b *Bot) renderVote(ctx context.Context, chatID int64, v flow.VoteView) error {
	if _, err := b.transport.SendPoll(ctx, telegram.OutgoingPoll{
		ChatID:                chatID,
		Question:              v.Question,
		Options:               v.Options,
		IsAnonymous:           v.Anonymous,
		AllowsMultipleAnswers: v.MultipleAnswers,
	}); err != nil {
		return err
	}

	logger := logging.WithContext(ctx, b.logger)
	b.sendAlbum(ctx, chatID, v)

	for _, chunk := range v.SynopsisChunks {
		if _, err := b.transport.SendMessage(ctx, telegram.OutgoingMessage{
			ChatID:                chatID,
			Text:                  chunk,
			ParseMode:             parseModeHTML,
			DisableWebPagePreview: true,
		}); err != nil {
			logger.Warn("synopsis send failed", logging.Error(err))
		}
	}
	if v.TrailerText != "" {
		if _, err := b.transport.SendMessage(ctx, telegram.OutgoingMessage{
			ChatID:    chatID,
			Text:      v.TrailerText,
			ParseMode: parseModeHTML,
		}); err != nil {
			logger.Warn("trailer send failed", logging.Error(err))
		}
	}
	if v.Attribution != "" {
		if _, err := b.transport.SendMessage(ctx, telegram.OutgoingMessage{ChatID: chatID, Text: v.Attribution}); err != nil {
			logger.Warn("attribution send failed", logging.Error(err))
		}
	}
	return nil
}

func (b *Bot) sendAlbum(ctx context.Context, chatID int64, v flow.VoteView) {
	logger := logging.WithContext(ctx, b.logger)
	photos := make([]telegram.Photo, 0, len(v.PosterPaths))
	for i, path := range v.PosterPaths {
		data, err := b.posters.FetchImage(ctx, b.posters.ImageURL(path))
		if err != nil {
			logger.Warn("poster fetch failed",
				logging.String("path", path),
				logging.Error(err))
			continue
		}
		photos = append(photos, telegram.Photo{Name: "poster_" + strconv.Itoa(i) + ".jpg", Data: data})
	}

	switch {
	case len(photos) == 0:
	case len(photos) == 1:
		if _, err := b.transport.SendPhoto(ctx, chatID, v.AlbumCaption, parseModeHTML, photos[0]); err != nil {
			logger.Warn("album send failed", logging.Error(err))
		}
	default:
		if err := b.transport.SendMediaGroup(ctx, chatID, v.AlbumCaption, parseModeHTML, photos); err != nil {
			logger.Warn("album send failed", logging.Error(err))
		}
	}
}

func buttonColumn(buttons []flow.Button) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(buttons))
	for _, button := range buttons {
		rows = append(rows, []telegram.InlineKeyboardButton{{Text: button.Label, CallbackData: button.Token}})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func buttonGrid(grid [][]flow.Button) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(grid))
	for _, row := range grid {
		buttons := make([]telegram.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, telegram.InlineKeyboardButton{Text: button.Label, CallbackData: button.Token})
		}
		rows = append(rows, buttons)
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}
