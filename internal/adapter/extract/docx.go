package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"docqa/internal/domain"
)

// documentXML mirrors the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// fromDOCX concatenates the text of every paragraph in document order, one
// newline per paragraph.
func fromDOCX(data []byte, name string) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &domain.ExtractionError{Name: name, Err: err}
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", &domain.ExtractionError{Name: name, Err: err}
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", &domain.ExtractionError{Name: name, Err: err}
		}

		var doc documentXML
		if err := xml.Unmarshal(content, &doc); err != nil {
			return "", &domain.ExtractionError{Name: name, Err: err}
		}

		var b strings.Builder
		for _, para := range doc.Body.Paragraphs {
			for _, r := range para.Runs {
				for _, t := range r.Text {
					b.WriteString(t.Content)
				}
			}
			b.WriteString("\n")
		}
		return b.String(), nil
	}

	return "", &domain.ExtractionError{Name: name, Err: errors.New("word/document.xml not found")}
}
