package ingest

import (
	"fmt"
	"unicode/utf8"

	coreingest "pdf-chunk-queue/internal/core/ingest"
)

// plannedChunk is a split piece with its absolute rune offsets in the full
// text and its estimated page span.
type plannedChunk struct {
	Index     int
	Text      string
	StartChar int
	EndChar   int
	Pages     coreingest.PageRange
}

// planChunks splits fullText and places every piece on the page axis. It
// runs before any store write so the document row can carry the final
// chunk count.
func planChunks(fullText string, totalPages, targetSize int) ([]plannedChunk, int, error) {
	pieces, err := coreingest.Split(fullText, targetSize)
	if err != nil {
		return nil, 0, err
	}

	totalChars := utf8.RuneCountInString(fullText)
	chunks := make([]plannedChunk, 0, len(pieces))
	offset := 0
	for i, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		pages, err := coreingest.EstimatePages(offset, offset+n, totalChars, totalPages)
		if err != nil {
			return nil, 0, fmt.Errorf("chunk %d: %w", i+1, err)
		}
		chunks = append(chunks, plannedChunk{
			Index:     i + 1,
			Text:      piece,
			StartChar: offset,
			EndChar:   offset + n,
			Pages:     pages,
		})
		offset += n
	}
	return chunks, totalChars, nil
}
