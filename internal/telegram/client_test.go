package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New("123:TESTTOKEN", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestGetUpdatesSendsOffsetAndDecodesResult(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"ok":true,"result":[
			{"update_id":7,"message":{"message_id":1,"chat":{"id":42},"text":"hi"}},
			{"update_id":8,"callback_query":{"id":"q1","from":{"id":9},"data":"add:603"}}
		]}`))
	})

	updates, err := client.GetUpdates(context.Background(), 7, 25)
	if err != nil {
		t.Fatalf("getUpdates: %v", err)
	}
	if gotPath != "/bot123:TESTTOKEN/getUpdates" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotPayload["offset"] != float64(7) || gotPayload["timeout"] != float64(25) {
		t.Errorf("unexpected payload: %v", gotPayload)
	}
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].Message == nil || updates[0].Message.Chat.ID != 42 {
		t.Errorf("unexpected first update: %+v", updates[0])
	}
	if updates[1].CallbackQuery == nil || updates[1].CallbackQuery.Data != "add:603" {
		t.Errorf("unexpected second update: %+v", updates[1])
	}
}

func TestSendMessageEncodesMarkup(t *testing.T) {
	var gotPayload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"ok":true,"result":{"message_id":10,"chat":{"id":42}}}`))
	})

	sent, err := client.SendMessage(context.Background(), OutgoingMessage{
		ChatID:    42,
		Text:      "<b>hi</b>",
		ParseMode: "HTML",
		ReplyMarkup: &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: "+ The Matrix", CallbackData: "add:603"}},
		}},
	})
	if err != nil {
		t.Fatalf("sendMessage: %v", err)
	}
	if sent.MessageID != 10 {
		t.Errorf("unexpected echo: %+v", sent)
	}
	if gotPayload["parse_mode"] != "HTML" {
		t.Errorf("parse_mode missing: %v", gotPayload)
	}
	markup, _ := gotPayload["reply_markup"].(map[string]any)
	if markup == nil || markup["inline_keyboard"] == nil {
		t.Errorf("reply_markup missing: %v", gotPayload)
	}
}

func TestSendPollAlwaysEncodesAnonymity(t *testing.T) {
	var raw map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
		w.Write([]byte(`{"ok":true,"result":{"message_id":11,"chat":{"id":42}}}`))
	})

	_, err := client.SendPoll(context.Background(), OutgoingPoll{
		ChatID:                42,
		Question:              "What are we watching?",
		Options:               []string{"A", "B"},
		IsAnonymous:           false,
		AllowsMultipleAnswers: true,
	})
	if err != nil {
		t.Fatalf("sendPoll: %v", err)
	}
	if string(raw["is_anonymous"]) != "false" {
		t.Errorf("is_anonymous must be sent explicitly, got %s", raw["is_anonymous"])
	}
	if string(raw["allows_multiple_answers"]) != "true" {
		t.Errorf("allows_multiple_answers wrong: %s", raw["allows_multiple_answers"])
	}
}

func TestAPIErrorCarriesRetryAfter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 17","parameters":{"retry_after":17}}`))
	})

	_, err := client.SendMessage(context.Background(), OutgoingMessage{ChatID: 42, Text: "hi"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Code != 429 || apiErr.RetryAfter != 17 {
		t.Errorf("unexpected API error: %+v", apiErr)
	}
}

func TestSendMediaGroupMultipart(t *testing.T) {
	var mediaField string
	var fileFields []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		mediaField = r.FormValue("media")
		for field := range r.MultipartForm.File {
			fileFields = append(fileFields, field)
		}
		w.Write([]byte(`{"ok":true,"result":[]}`))
	})

	photos := []Photo{
		{Name: "a.jpg", Data: []byte("aaa")},
		{Name: "b.jpg", Data: []byte("bbb")},
	}
	if err := client.SendMediaGroup(context.Background(), 42, "caption", "HTML", photos); err != nil {
		t.Fatalf("sendMediaGroup: %v", err)
	}
	if len(fileFields) != 2 {
		t.Errorf("expected 2 file parts, got %v", fileFields)
	}
	if !strings.Contains(mediaField, `"attach://photo0"`) || !strings.Contains(mediaField, `"attach://photo1"`) {
		t.Errorf("media field missing attach references: %s", mediaField)
	}
	if !strings.Contains(mediaField, `"caption":"caption"`) {
		t.Errorf("album caption missing: %s", mediaField)
	}
}

func TestSendMediaGroupRejectsSinglePhoto(t *testing.T) {
	client, err := New("123:TESTTOKEN")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = client.SendMediaGroup(context.Background(), 42, "", "", []Photo{{Data: []byte("x")}})
	if err == nil {
		t.Fatal("expected error for single-photo album")
	}
}

func TestAnswerCallbackQuery(t *testing.T) {
	var gotPayload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"ok":true,"result":true}`))
	})

	if err := client.AnswerCallbackQuery(context.Background(), "q1", "Added"); err != nil {
		t.Fatalf("answerCallbackQuery: %v", err)
	}
	if gotPayload["callback_query_id"] != "q1" || gotPayload["text"] != "Added" {
		t.Errorf("unexpected payload: %v", gotPayload)
	}
}
