package ingest

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
)

var pdfMagic = []byte("%PDF-")

// CheckFileType accepts filename when its extension is allowed and, for
// PDFs, when the header appears within the first kilobyte as readers allow.
func CheckFileType(filename string, data []byte, allowed []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, ext) }) {
		return &InvalidFileTypeError{Filename: filename, Reason: "only " + strings.Join(allowed, ", ") + " files are accepted"}
	}
	if ext == ".pdf" && !bytes.Contains(data[:min(len(data), 1024)], pdfMagic) {
		return &InvalidFileTypeError{Filename: filename, Reason: "content is not a PDF"}
	}
	return nil
}
