package extract

import (
	"strings"
	"unicode/utf8"
)

// fromText decodes plain text as UTF-8, dropping undecodable bytes rather
// than failing.
func fromText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "")
}
