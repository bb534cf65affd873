package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func TestExtract_PlainText(t *testing.T) {
	e := New()

	text, err := e.Extract([]byte("hello world"), "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtract_PlainTextInvalidUTF8(t *testing.T) {
	e := New()

	text, err := e.Extract([]byte{'o', 'k', 0xff, 0xfe, '!'}, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "ok!", text)
}

func TestExtract_ExtensionCaseInsensitive(t *testing.T) {
	e := New()

	text, err := e.Extract([]byte("upper"), "NOTES.TXT")
	require.NoError(t, err)
	assert.Equal(t, "upper", text)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	e := New()

	_, err := e.Extract([]byte("# heading"), "readme.md")
	require.Error(t, err)

	var unsupported *domain.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".md", unsupported.Extension)
}

func TestExtract_DOCX(t *testing.T) {
	e := New()

	data := buildDOCX(t, `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <body>
    <p><r><t>First paragraph.</t></r></p>
    <p><r><t>Second </t><t>paragraph.</t></r></p>
  </body>
</document>`)

	text, err := e.Extract(data, "report.docx")
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.\n", text)
}

func TestExtract_DOCXNotAZip(t *testing.T) {
	e := New()

	_, err := e.Extract([]byte("not a zip archive"), "report.docx")
	require.Error(t, err)

	var extraction *domain.ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "report.docx", extraction.Name)
}

func TestExtract_DOCXMissingDocumentXML(t *testing.T) {
	e := New()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = e.Extract(buf.Bytes(), "report.docx")
	var extraction *domain.ExtractionError
	require.ErrorAs(t, err, &extraction)
}

func TestExtract_PDFCorrupt(t *testing.T) {
	e := New()

	_, err := e.Extract([]byte("%PDF-1.7 garbage"), "broken.pdf")
	require.Error(t, err)

	var extraction *domain.ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "broken.pdf", extraction.Name)
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}
