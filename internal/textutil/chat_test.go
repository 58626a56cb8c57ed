package textutil

import (
	"strings"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`Fast & <Furious> "9"`)
	want := `Fast &amp; &lt;Furious&gt; "9"`
	if got != want {
		t.Fatalf("EscapeHTML = %q, want %q", got, want)
	}
}

func TestClipShortInputUnchanged(t *testing.T) {
	if got := Clip("short", 10); got != "short" {
		t.Fatalf("Clip = %q, want unchanged input", got)
	}
}

func TestClipCountsRunes(t *testing.T) {
	got := Clip("привет мир", 6)
	if got != "привет…" {
		t.Fatalf("Clip = %q, want %q", got, "привет…")
	}
}

func TestJoinBlocksSeparatesWithBlankLines(t *testing.T) {
	got := JoinBlocks([]string{"a", "b", "c"}, 100)
	if got != "a\n\nb\n\nc" {
		t.Fatalf("JoinBlocks = %q", got)
	}
}

func TestJoinBlocksStopsAfterCrossingHint(t *testing.T) {
	blocks := []string{strings.Repeat("x", 10), strings.Repeat("y", 10), strings.Repeat("z", 10)}
	got := JoinBlocks(blocks, 15)
	if strings.Contains(got, "z") {
		t.Fatalf("JoinBlocks kept blocks past the hint: %q", got)
	}
	if !strings.Contains(got, "y") {
		t.Fatalf("JoinBlocks should keep the block that crosses the hint: %q", got)
	}
}

func TestSplitChunks(t *testing.T) {
	chunks := SplitChunks(strings.Repeat("a", 10), 4)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[2] != "aa" {
		t.Fatalf("last chunk = %q, want %q", chunks[2], "aa")
	}
}

func TestSplitChunksEmpty(t *testing.T) {
	if chunks := SplitChunks("", 10); chunks != nil {
		t.Fatalf("expected nil for empty input, got %#v", chunks)
	}
}
