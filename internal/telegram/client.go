package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// callTimeout bounds every non-polling API call.
const callTimeout = 30 * time.Second

// APIError is a Bot API level failure (the envelope came back with ok=false).
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// Client talks to the Bot API for one bot token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}
	c := &Client{
		token:   token,
		baseURL: defaultBaseURL,
		// No client-level timeout: getUpdates long polls, so deadlines are
		// set per call via context.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetMe validates the token and returns the bot identity.
func (c *Client) GetMe(ctx context.Context) (User, error) {
	var me User
	err := c.call(ctx, "getMe", struct{}{}, &me)
	return me, err
}

// GetUpdates long polls for up to timeoutSeconds. offset acknowledges all
// updates below it, per the Bot API offset protocol.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	payload := struct {
		Offset         int64    `json:"offset"`
		Timeout        int      `json:"timeout"`
		AllowedUpdates []string `json:"allowed_updates"`
	}{
		Offset:         offset,
		Timeout:        timeoutSeconds,
		AllowedUpdates: []string{"message", "callback_query"},
	}

	// Leave the server room to answer after the poll window closes.
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second+callTimeout)
	defer cancel()

	var updates []Update
	if err := c.callRaw(ctx, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends a text message and returns the echoed message.
func (c *Client) SendMessage(ctx context.Context, msg OutgoingMessage) (Message, error) {
	var sent Message
	err := c.call(ctx, "sendMessage", msg, &sent)
	return sent, err
}

// SendPoll creates a native poll in the chat.
func (c *Client) SendPoll(ctx context.Context, poll OutgoingPoll) (Message, error) {
	var sent Message
	err := c.call(ctx, "sendPoll", poll, &sent)
	return sent, err
}

// AnswerCallbackQuery acknowledges a button press with a short notification.
func (c *Client) AnswerCallbackQuery(ctx context.Context, queryID, text string) error {
	payload := struct {
		CallbackQueryID string `json:"callback_query_id"`
		Text            string `json:"text,omitempty"`
	}{CallbackQueryID: queryID, Text: text}
	return c.call(ctx, "answerCallbackQuery", payload, nil)
}

// call posts a JSON payload with the standard per-call deadline.
func (c *Client) call(ctx context.Context, method string, payload, out any) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return c.callRaw(ctx, method, payload, out)
}

func (c *Client) callRaw(ctx context.Context, method string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram %s: encode payload: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, method, out)
}

func (c *Client) do(req *http.Request, method string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which contains the bot token.
		if uerr, ok := err.(*url.Error); ok {
			err = uerr.Err
		}
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", method, err)
	}
	if !envelope.OK {
		apiErr := &APIError{
			Method:      method,
			Code:        envelope.ErrorCode,
			Description: envelope.Description,
		}
		if envelope.Parameters != nil {
			apiErr.RetryAfter = envelope.Parameters.RetryAfter
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("telegram %s: decode result: %w", method, err)
	}
	return nil
}

func (c *Client) methodURL(method string) string {
	return c.baseURL + "/bot" + c.token + "/" + method
}
