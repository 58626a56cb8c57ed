package textutil

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes the three characters Telegram's HTML parse mode treats
// as markup.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// Clip truncates s to at most max runes, appending an ellipsis when anything
// was cut. A non-positive max returns s unchanged.
func Clip(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// JoinBlocks concatenates blocks with blank-line separators, stopping after
// the block that crosses limitHint runes. The final block is still appended
// in full so callers can chunk the result with SplitChunks.
func JoinBlocks(blocks []string, limitHint int) string {
	var out strings.Builder
	count := 0
	for _, b := range blocks {
		piece := b
		if out.Len() > 0 {
			piece = "\n\n" + b
		}
		out.WriteString(piece)
		count += len([]rune(piece))
		if limitHint > 0 && count > limitHint {
			break
		}
	}
	return out.String()
}

// SplitChunks splits s into pieces of at most max runes each, preserving
// order. Empty input yields no chunks.
func SplitChunks(s string, max int) []string {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return []string{s}
	}
	chunks := make([]string, 0, (len(runes)+max-1)/max)
	for start := 0; start < len(runes); start += max {
		end := start + max
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// Ternary is a generic conditional helper that returns a if cond is true, b otherwise.
func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
