package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	coreingest "pdf-chunk-queue/internal/core/ingest"
	"pdf-chunk-queue/internal/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePages(n int) []string {
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, fmt.Sprintf("Page %d opens here. %s\n\nIt closes with a sentence.\n", i, strings.Repeat("lorem ipsum ", 40)))
	}
	return pages
}

func TestProducer_IngestQueuesOrderedChunks(t *testing.T) {
	store := &memoryStore{}
	p := NewProducer(Config{ChunkTargetSize: 300}, store)
	pages := samplePages(6)

	summary, err := p.Ingest(context.Background(), "report.pdf", pages)
	require.NoError(t, err)

	require.Len(t, store.docs, 1)
	doc := store.docs[0]
	assert.Equal(t, "report.pdf", doc.Filename)
	assert.Equal(t, 6, doc.TotalPages)
	assert.Equal(t, model.DocumentProcessing, doc.Status)
	assert.Equal(t, len(store.chunks), doc.TotalChunks)
	assert.Greater(t, doc.TotalChunks, 1)

	assert.Equal(t, &Summary{
		DocumentID:  doc.ID,
		Filename:    "report.pdf",
		TotalPages:  6,
		TotalChunks: doc.TotalChunks,
		TotalChars:  len(strings.Join(pages, "")),
	}, summary)

	// the document row is written first, then the chunks
	assert.Equal(t, "document", store.calls[0])

	var joined strings.Builder
	for i, ch := range store.chunks {
		assert.Equal(t, doc.ID, ch.DocumentID)
		assert.Equal(t, i+1, ch.ChunkIndex)
		assert.Equal(t, model.ChunkPending, ch.ProcessingStatus)
		assert.Zero(t, ch.RetryCount)
		assert.Regexp(t, `^\d+ a \d+$`, ch.EstimatedPages)
		joined.WriteString(ch.ChunkText)
	}
	assert.Equal(t, strings.Join(pages, ""), joined.String())
}

func TestProducer_EstimatedPagesFollowCharacterDensity(t *testing.T) {
	store := &memoryStore{}
	p := NewProducer(Config{ChunkTargetSize: 100}, store)

	pages := make([]string, 10)
	for i := range pages {
		pages[i] = strings.Repeat("a", 100)
	}

	summary, err := p.Ingest(context.Background(), "flat.pdf", pages)
	require.NoError(t, err)
	require.Equal(t, 10, summary.TotalChunks)

	for i, ch := range store.chunks {
		assert.Equal(t, fmt.Sprintf("%d a %d", i+1, i+1), ch.EstimatedPages)
	}
}

func TestProducer_DefaultTargetSize(t *testing.T) {
	store := &memoryStore{}
	p := NewProducer(Config{}, store)

	summary, err := p.Ingest(context.Background(), "big.pdf", []string{strings.Repeat("a", 25000)})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalChunks)
	assert.Len(t, store.chunks[0].ChunkText, 10000)
	assert.Len(t, store.chunks[2].ChunkText, 5000)
}

func TestProducer_NoExtractableText(t *testing.T) {
	for _, pages := range [][]string{nil, {}, {"", ""}, {"  \n", "\t"}} {
		store := &memoryStore{}
		p := NewProducer(Config{ChunkTargetSize: 100}, store)

		_, err := p.Ingest(context.Background(), "scan.pdf", pages)
		require.ErrorIs(t, err, coreingest.ErrNoExtractableText)
		assert.Zero(t, store.writes())
		assert.Empty(t, store.calls)
	}
}

func TestProducer_DocumentWriteFailure(t *testing.T) {
	store := &memoryStore{failDoc: errors.New("connection refused")}
	p := NewProducer(Config{ChunkTargetSize: 100}, store)

	_, err := p.Ingest(context.Background(), "report.pdf", samplePages(2))

	var storeErr *coreingest.StoreWriteError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusInternalServerError, storeErr.Status)
	assert.Equal(t, []string{"document"}, store.calls)

	var partial *coreingest.PartialIngestionError
	assert.False(t, errors.As(err, &partial))
}

func TestProducer_PartialIngestion(t *testing.T) {
	store := &memoryStore{failChunkAt: 3}
	p := NewProducer(Config{ChunkTargetSize: 100}, store)

	_, err := p.Ingest(context.Background(), "report.pdf", samplePages(4))

	var partial *coreingest.PartialIngestionError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, store.docs[0].ID, partial.DocumentID)
	assert.Equal(t, 2, partial.Written)
	assert.Equal(t, store.docs[0].TotalChunks, partial.Total)

	var storeErr *coreingest.StoreWriteError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusServiceUnavailable, storeErr.Status)

	// written rows are kept and nothing after the failure was attempted
	require.Len(t, store.chunks, 2)
	assert.Equal(t, 1, store.chunks[0].ChunkIndex)
	assert.Equal(t, 2, store.chunks[1].ChunkIndex)
	assert.Len(t, store.calls, 1+3)
}

func TestProducer_CancelledContext(t *testing.T) {
	store := &memoryStore{}
	p := NewProducer(Config{ChunkTargetSize: 100}, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Ingest(ctx, "report.pdf", samplePages(2))

	var partial *coreingest.PartialIngestionError
	require.ErrorAs(t, err, &partial)
	assert.Zero(t, partial.Written)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.chunks)
}
