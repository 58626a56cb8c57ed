// Package telegram is a minimal Telegram Bot API client covering the calls
// the bot actually makes: getMe, long-polled getUpdates, sendMessage,
// sendPhoto, sendMediaGroup, sendPoll, and answerCallbackQuery.
//
// The client speaks the plain HTTPS JSON API. Methods decode the standard
// ok/description envelope and surface API failures as *APIError so callers
// can inspect the error code and retry-after hint.
package telegram
