package chunker

import (
	"regexp"
	"strings"

	"docqa/internal/port"
)

var whitespace = regexp.MustCompile(`\s+`)

var _ port.Chunker = (*TextChunker)(nil)

// TextChunker splits normalized text into overlapping, size-bounded
// segments, preferring sentence boundaries as cut points.
type TextChunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewTextChunker creates a chunker. Non-positive arguments fall back to the
// 1000/200 defaults.
func NewTextChunker(chunkSize, chunkOverlap int) *TextChunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 200
	}
	return &TextChunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Split returns the ordered chunks of text. Whitespace runs are collapsed to
// a single space before chunking; sizes are measured in runes.
func (c *TextChunker) Split(text string) []string {
	normalized := strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if normalized == "" {
		return nil
	}

	runes := []rune(normalized)
	n := len(runes)
	if n <= c.chunkSize {
		return []string{normalized}
	}

	var chunks []string
	start := 0
	for start < n {
		end := start + c.chunkSize

		// Not at the end of the text: back up to a good breaking point.
		if end < n {
			if p := lastIndexAny(runes, start, end, ".?!"); p > start+c.chunkSize/2 {
				end = p + 1
			} else if sp := lastIndexAny(runes, start, end, " "); sp >= 0 {
				end = sp + 1
			}
			// Otherwise cut mid-token at the window edge.
		}

		cut := end
		if cut > n {
			cut = n
		}
		if chunk := strings.TrimSpace(string(runes[start:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := end - c.chunkOverlap
		if next <= start {
			// Overlap at or beyond the window size would stall the walk.
			next = end
		}
		start = next
	}

	return chunks
}

// lastIndexAny returns the largest index in [start, end) whose rune is one
// of chars, or -1.
func lastIndexAny(runes []rune, start, end int, chars string) int {
	for i := end - 1; i >= start; i-- {
		if strings.ContainsRune(chars, runes[i]) {
			return i
		}
	}
	return -1
}
