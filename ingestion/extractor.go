package ingestion

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextExtractor turns a raw document payload into plain text plus a page
// count. PDF and other binary formats are extracted by an upstream
// collaborator before ingestion; this interface covers whatever formats the
// deployment stages as bytes.
type TextExtractor interface {
	Extract(data []byte) (text string, pageCount int, err error)
}

// PlainText extracts UTF-8 text payloads. Form feed characters are treated
// as page separators, matching how upstream PDF-to-text converters mark
// page boundaries.
type PlainText struct{}

var _ TextExtractor = (*PlainText)(nil)

func (PlainText) Extract(data []byte) (string, int, error) {
	if !utf8.Valid(data) {
		return "", 0, fmt.Errorf("payload is not valid UTF-8")
	}

	text := string(data)
	pageCount := strings.Count(text, "\f") + 1
	text = strings.ReplaceAll(text, "\f", "\n")

	return text, pageCount, nil
}
