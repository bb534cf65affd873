package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"docqa/internal/domain"
)

// fromPDF concatenates the extracted text of every page in page order,
// inserting a newline after each page. Pages that fail extraction contribute
// an empty string; only a document-level parse failure aborts.
func fromPDF(data []byte, name string) (text string, err error) {
	// The pdf package panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &domain.ExtractionError{Name: name, Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &domain.ExtractionError{Name: name, Err: err}
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		b.WriteString(pageText(reader.Page(i)))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// pageText extracts one page, tolerating per-page failures.
func pageText(page pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
