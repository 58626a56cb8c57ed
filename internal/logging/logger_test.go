package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("nonsense"); got != slog.LevelInfo {
		t.Fatalf("parseLevel = %v, want info", got)
	}
	if got := parseLevel(""); got != slog.LevelInfo {
		t.Fatalf("parseLevel empty = %v, want info", got)
	}
	if got := parseLevel("DEBUG"); got != slog.LevelDebug {
		t.Fatalf("parseLevel DEBUG = %v, want debug", got)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestConsoleHandlerRendersComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))
	logger = NewComponentLogger(logger, "store")

	logger.Info("saved snapshot", String("path", "/tmp/state.json"))

	line := buf.String()
	if !strings.Contains(line, "[store]") {
		t.Fatalf("missing component tag: %q", line)
	}
	if !strings.Contains(line, "path=/tmp/state.json") {
		t.Fatalf("missing attr: %q", line)
	}
}

func TestWithContextAddsChatAndCorrelationFields(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	ctx := WithChatID(context.Background(), 42)
	ctx = WithCorrelationID(ctx, "abc")
	WithContext(ctx, logger).Info("handled")

	line := buf.String()
	if !strings.Contains(line, "chat_id=42") || !strings.Contains(line, "correlation_id=abc") {
		t.Fatalf("context fields missing: %q", line)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("should not panic", Error(nil))
}
