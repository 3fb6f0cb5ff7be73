package documents

import (
	"context"
	"errors"
	"strconv"

	"pdf-chunk-queue/config"
	"pdf-chunk-queue/internal/database"
	"pdf-chunk-queue/internal/database/model"
	"pdf-chunk-queue/pkg/apperror"
	"pdf-chunk-queue/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// QueueReader is the read side of the store.
type QueueReader interface {
	GetDocument(ctx context.Context, id int64) (*model.Document, error)
	ListChunks(ctx context.Context, documentID int64, status model.ChunkStatus) ([]model.Chunk, error)
	CountChunks(ctx context.Context, documentID int64) (int64, error)
}

type Handler struct {
	store QueueReader
}

func NewHandler(store QueueReader) *Handler {
	return &Handler{store: store}
}

type documentResponse struct {
	*model.Document
	PersistedChunks int64 `json:"persisted_chunks"`
	// Incomplete marks a document whose declared chunk count exceeds the
	// rows actually written, left behind by a partial ingestion.
	Incomplete bool `json:"incomplete"`
}

type chunksResponse struct {
	DocumentID int64         `json:"document_id"`
	Chunks     []model.Chunk `json:"chunks"`
}

func (h *Handler) HandleGetDocument(c fiber.Ctx) error {
	docID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperror.BadRequest(config.ModuleDocuments, c, status.MissingParams, "invalid document id")
	}

	doc, err := h.store.GetDocument(c.Context(), docID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperror.NotFound(config.ModuleDocuments, c, status.DocumentNotFound, "document not found")
		}
		return apperror.InternalError(config.ModuleDocuments, c, err)
	}

	persisted, err := h.store.CountChunks(c.Context(), docID)
	if err != nil {
		return apperror.InternalError(config.ModuleDocuments, c, err)
	}

	return apperror.Success(c, "document ok", documentResponse{
		Document:        doc,
		PersistedChunks: persisted,
		Incomplete:      persisted < int64(doc.TotalChunks),
	})
}

// HandleListChunks returns the chunks of a document in chunk order,
// optionally filtered by ?status=pending|in_progress|done|failed.
func (h *Handler) HandleListChunks(c fiber.Ctx) error {
	docID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperror.BadRequest(config.ModuleDocuments, c, status.MissingParams, "invalid document id")
	}

	chunkStatus := model.ChunkStatus(c.Query("status"))
	if chunkStatus != "" && !chunkStatus.Valid() {
		return apperror.BadRequest(config.ModuleDocuments, c, status.InvalidChunkStatus, "unknown chunk status")
	}

	if _, err := h.store.GetDocument(c.Context(), docID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return apperror.NotFound(config.ModuleDocuments, c, status.DocumentNotFound, "document not found")
		}
		return apperror.InternalError(config.ModuleDocuments, c, err)
	}

	chunks, err := h.store.ListChunks(c.Context(), docID, chunkStatus)
	if err != nil {
		return apperror.InternalError(config.ModuleDocuments, c, err)
	}
	if chunks == nil {
		chunks = []model.Chunk{}
	}

	return apperror.Success(c, "chunks ok", chunksResponse{DocumentID: docID, Chunks: chunks})
}
