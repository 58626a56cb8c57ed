package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
)

// Photo is one image upload: raw bytes plus a filename hint for the
// multipart part.
type Photo struct {
	Name string
	Data []byte
}

// SendPhoto uploads a single photo with an optional caption.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, caption, parseMode string, photo Photo) (Message, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return Message{}, fmt.Errorf("telegram sendPhoto: %w", err)
	}
	if caption != "" {
		if err := writer.WriteField("caption", caption); err != nil {
			return Message{}, fmt.Errorf("telegram sendPhoto: %w", err)
		}
		if parseMode != "" {
			if err := writer.WriteField("parse_mode", parseMode); err != nil {
				return Message{}, fmt.Errorf("telegram sendPhoto: %w", err)
			}
		}
	}
	if err := writeFilePart(writer, "photo", photo); err != nil {
		return Message{}, fmt.Errorf("telegram sendPhoto: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Message{}, fmt.Errorf("telegram sendPhoto: %w", err)
	}

	var sent Message
	err := c.postMultipart(ctx, "sendPhoto", writer.FormDataContentType(), &buf, &sent)
	return sent, err
}

type inputMediaPhoto struct {
	Type      string `json:"type"`
	Media     string `json:"media"`
	Caption   string `json:"caption,omitempty"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// SendMediaGroup uploads 2-10 photos as one album. The caption is attached
// to the first photo, which Telegram renders as the album caption.
func (c *Client) SendMediaGroup(ctx context.Context, chatID int64, caption, parseMode string, photos []Photo) error {
	if len(photos) < 2 || len(photos) > 10 {
		return fmt.Errorf("telegram sendMediaGroup: need 2-10 photos, have %d", len(photos))
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return fmt.Errorf("telegram sendMediaGroup: %w", err)
	}

	media := make([]inputMediaPhoto, len(photos))
	for i, photo := range photos {
		field := "photo" + strconv.Itoa(i)
		media[i] = inputMediaPhoto{Type: "photo", Media: "attach://" + field}
		if i == 0 && caption != "" {
			media[i].Caption = caption
			media[i].ParseMode = parseMode
		}
		if err := writeFilePart(writer, field, photo); err != nil {
			return fmt.Errorf("telegram sendMediaGroup: %w", err)
		}
	}
	mediaJSON, err := json.Marshal(media)
	if err != nil {
		return fmt.Errorf("telegram sendMediaGroup: encode media: %w", err)
	}
	if err := writer.WriteField("media", string(mediaJSON)); err != nil {
		return fmt.Errorf("telegram sendMediaGroup: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("telegram sendMediaGroup: %w", err)
	}

	return c.postMultipart(ctx, "sendMediaGroup", writer.FormDataContentType(), &buf, nil)
}

func writeFilePart(writer *multipart.Writer, field string, photo Photo) error {
	name := photo.Name
	if name == "" {
		name = field + ".jpg"
	}
	part, err := writer.CreateFormFile(field, name)
	if err != nil {
		return err
	}
	_, err = part.Write(photo.Data)
	return err
}

func (c *Client) postMultipart(ctx context.Context, method, contentType string, body *bytes.Buffer, out any) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), body)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, method, out)
}
