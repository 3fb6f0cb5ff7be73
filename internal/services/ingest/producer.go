package ingest

import (
	"context"
	"errors"
	"strings"

	"pdf-chunk-queue/config"
	coreingest "pdf-chunk-queue/internal/core/ingest"
	"pdf-chunk-queue/internal/database/model"
	"pdf-chunk-queue/pkg/logger"
)

const DefaultChunkTargetSize = 10000

// Config holds the producer settings.
type Config struct {
	ChunkTargetSize int
}

// Store is the write side of the queue.
type Store interface {
	CreateDocument(ctx context.Context, doc *model.Document) error
	CreateChunk(ctx context.Context, chunk *model.Chunk) error
}

// Summary describes a fully queued document.
type Summary struct {
	DocumentID  int64  `json:"document_id"`
	Filename    string `json:"filename"`
	TotalPages  int    `json:"total_pages"`
	TotalChunks int    `json:"total_chunks"`
	TotalChars  int    `json:"total_chars"`
}

// Producer registers a document and its ordered chunks in the queue.
// A Producer holds no per-request state and may serve concurrent requests.
type Producer struct {
	cfg   Config
	store Store
}

func NewProducer(cfg Config, store Store) *Producer {
	if cfg.ChunkTargetSize <= 0 {
		cfg.ChunkTargetSize = DefaultChunkTargetSize
	}
	return &Producer{cfg: cfg, store: store}
}

// Ingest splits the page texts and writes one document row followed by its
// chunk rows, strictly in chunk order. A chunk write failure stops the run
// with a PartialIngestionError; rows already written stay in place.
func (p *Producer) Ingest(ctx context.Context, filename string, pages []string) (*Summary, error) {
	fullText := strings.Join(pages, "")
	if strings.TrimSpace(fullText) == "" {
		return nil, coreingest.ErrNoExtractableText
	}

	planned, totalChars, err := planChunks(fullText, len(pages), p.cfg.ChunkTargetSize)
	if err != nil {
		return nil, err
	}
	logger.WithFields(map[string]interface{}{
		"filename":          filename,
		"pages":             len(pages),
		"chars":             totalChars,
		"chunks":            len(planned),
		"chunk_target_size": p.cfg.ChunkTargetSize,
	}).Info("ingest: chunks planned")

	doc := &model.Document{
		Filename:    filename,
		TotalPages:  len(pages),
		TotalChunks: len(planned),
		Status:      model.DocumentProcessing,
	}
	if err := p.store.CreateDocument(ctx, doc); err != nil {
		logger.Error(err, "%v: create document failed: %s", config.ModuleIngest, filename)
		return nil, asStoreWriteError(err)
	}

	for i, ch := range planned {
		if err := ctx.Err(); err != nil {
			return nil, p.partial(doc, i, err)
		}
		row := &model.Chunk{
			DocumentID:       doc.ID,
			ChunkIndex:       ch.Index,
			ChunkText:        ch.Text,
			EstimatedPages:   ch.Pages.String(),
			ProcessingStatus: model.ChunkPending,
			RetryCount:       0,
		}
		if err := p.store.CreateChunk(ctx, row); err != nil {
			return nil, p.partial(doc, i, asStoreWriteError(err))
		}
	}

	logger.WithFields(map[string]interface{}{
		"doc_id": doc.ID,
		"chunks": len(planned),
	}).Info("ingest: document queued")

	return &Summary{
		DocumentID:  doc.ID,
		Filename:    filename,
		TotalPages:  doc.TotalPages,
		TotalChunks: doc.TotalChunks,
		TotalChars:  totalChars,
	}, nil
}

func (p *Producer) partial(doc *model.Document, written int, err error) error {
	perr := &coreingest.PartialIngestionError{
		DocumentID: doc.ID,
		Written:    written,
		Total:      doc.TotalChunks,
		Err:        err,
	}
	logger.WithFields(map[string]interface{}{
		"doc_id":         doc.ID,
		"chunks_written": written,
		"total_chunks":   doc.TotalChunks,
	}).Errorf("ingest: partial ingestion: %v", err)
	return perr
}

func asStoreWriteError(err error) error {
	var swe *coreingest.StoreWriteError
	if errors.As(err, &swe) {
		return err
	}
	return coreingest.NewStoreWriteError(0, err)
}
