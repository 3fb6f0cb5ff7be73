package ingest

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyInput is returned by Split for empty text.
	ErrEmptyInput = errors.New("ingest: empty input text")
	// ErrInvalidTargetSize is returned by Split for a non-positive chunk size.
	ErrInvalidTargetSize = errors.New("ingest: chunk target size must be positive")
	// ErrInvalidDocument is returned by EstimatePages when the document has
	// no pages or no characters.
	ErrInvalidDocument = errors.New("ingest: document has no pages or no characters")
	// ErrNoExtractableText means extraction produced no text, typically a
	// scanned image document. No queue entries were created.
	ErrNoExtractableText = errors.New("ingest: document has no extractable text; nothing was queued")
)

// InvalidFileTypeError rejects an upload by extension or content type.
type InvalidFileTypeError struct {
	Filename string
	Reason   string
}

func (e *InvalidFileTypeError) Error() string {
	return fmt.Sprintf("ingest: invalid file type for %q: %s", e.Filename, e.Reason)
}

// DocumentOpenError means the document bytes could not be parsed.
type DocumentOpenError struct {
	Err error
}

func (e *DocumentOpenError) Error() string {
	return fmt.Sprintf("ingest: cannot open document: %v", e.Err)
}

func (e *DocumentOpenError) Unwrap() error { return e.Err }

// StoreWriteError is a failed store call. Status follows HTTP semantics.
type StoreWriteError struct {
	Status  int
	Message string
	Err     error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("ingest: store write failed (%d): %s", e.Status, e.Message)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// NewStoreWriteError wraps err with the given status. A zero status becomes 500.
func NewStoreWriteError(status int, err error) *StoreWriteError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	return &StoreWriteError{Status: status, Message: msg, Err: err}
}

// PartialIngestionError is returned when the document row exists but not
// all of its chunk rows could be written. Rows already written are kept.
type PartialIngestionError struct {
	DocumentID int64
	Written    int
	Total      int
	Err        error
}

func (e *PartialIngestionError) Error() string {
	return fmt.Sprintf("ingest: document %d partially queued (%d of %d chunks written): %v",
		e.DocumentID, e.Written, e.Total, e.Err)
}

func (e *PartialIngestionError) Unwrap() error { return e.Err }
