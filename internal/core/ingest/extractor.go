package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Extractor turns raw document bytes into per-page text in page order.
type Extractor interface {
	Extract(data []byte) ([]string, error)
}

// PDFExtractor extracts plain text page by page using ledongthuc/pdf.
type PDFExtractor struct{}

// Extract returns one string per page. Pages without a content stream yield
// an empty string so the page count stays exact.
func (PDFExtractor) Extract(data []byte) (pages []string, err error) {
	if len(data) == 0 {
		return nil, &DocumentOpenError{Err: errors.New("empty document")}
	}

	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = &DocumentOpenError{Err: fmt.Errorf("pdf parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DocumentOpenError{Err: err}
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &DocumentOpenError{Err: fmt.Errorf("page %d: %w", i, err)}
		}
		pages = append(pages, sanitizePageText(text))
	}
	return pages, nil
}

// sanitizePageText removes BOM, replacement runes and non-printable runes,
// keeping common whitespace. Other Unicode spaces (NBSP, thin space) become
// a plain space so the words around them stay apart.
func sanitizePageText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToValidUTF8(s, "") {
		if r == '\uFEFF' || r == unicode.ReplacementChar {
			continue
		}
		if r != '\n' && r != '\t' && r != '\r' && unicode.IsSpace(r) {
			r = ' '
		}
		if r != '\n' && r != '\t' && r != '\r' && !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
