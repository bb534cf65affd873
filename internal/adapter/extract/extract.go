// Package extract converts uploaded document blobs (PDF, DOCX, plain text)
// into plain text. Extraction is side-effect-free and never mutates the
// source bytes.
package extract

import (
	"path/filepath"
	"strings"

	"docqa/internal/domain"
	"docqa/internal/port"
)

var _ port.Extractor = (*Extractor)(nil)

// Extractor dispatches on the file extension.
type Extractor struct{}

// New creates an extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the best-effort plain-text transcription of data.
func (e *Extractor) Extract(data []byte, fileName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".pdf":
		return fromPDF(data, fileName)
	case ".docx":
		return fromDOCX(data, fileName)
	case ".txt":
		return fromText(data), nil
	default:
		return "", &domain.UnsupportedFormatError{Extension: ext}
	}
}
