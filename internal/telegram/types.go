package telegram

import "encoding/json"

// User is the subset of the Bot API User object the bot reads.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Message is an inbound or echoed outbound chat message. Photo messages
// carry their text in Caption instead of Text.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
	Caption   string `json:"caption"`
}

// CallbackQuery is a pressed inline keyboard button.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

// Update is one item from getUpdates. Exactly one of the pointer fields is
// set for the update kinds this bot subscribes to.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
}

// InlineKeyboardButton is one button with an opaque callback token.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
}

// InlineKeyboardMarkup is the reply-markup grid attached to a message.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// OutgoingMessage is the sendMessage payload.
type OutgoingMessage struct {
	ChatID                int64                 `json:"chat_id"`
	Text                  string                `json:"text"`
	ParseMode             string                `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// OutgoingPoll is the sendPoll payload. IsAnonymous must always be encoded:
// the API default is true and omitempty would silently reinstate it.
type OutgoingPoll struct {
	ChatID                int64    `json:"chat_id"`
	Question              string   `json:"question"`
	Options               []string `json:"options"`
	IsAnonymous           bool     `json:"is_anonymous"`
	AllowsMultipleAnswers bool     `json:"allows_multiple_answers"`
}

type responseParameters struct {
	RetryAfter int `json:"retry_after"`
}

// apiResponse is the envelope every Bot API call returns.
type apiResponse struct {
	OK          bool                `json:"ok"`
	Description string              `json:"description"`
	ErrorCode   int                 `json:"error_code"`
	Result      json.RawMessage     `json:"result"`
	Parameters  *responseParameters `json:"parameters"`
}
