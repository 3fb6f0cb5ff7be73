package ingest

import (
	"context"
	"io"

	"pdf-chunk-queue/config"
	ingestsvc "pdf-chunk-queue/internal/services/ingest"
	"pdf-chunk-queue/pkg/apperror"
	"pdf-chunk-queue/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

// DocumentIngester is implemented by the ingest service.
type DocumentIngester interface {
	IngestDocument(ctx context.Context, filename string, data []byte) (*ingestsvc.Summary, error)
}

type Handler struct {
	service DocumentIngester
}

func NewHandler(service DocumentIngester) *Handler {
	return &Handler{service: service}
}

// HandleIngest reads the multipart "file" field and queues its chunks.
// The request blocks until every chunk row is written.
func (h *Handler) HandleIngest(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperror.BadRequest(config.ModuleIngest, c, status.MissingParams, "file is required")
	}
	if fh == nil || fh.Size == 0 {
		return apperror.BadRequest(config.ModuleIngest, c, status.MissingParams, "empty file")
	}

	file, err := fh.Open()
	if err != nil {
		return apperror.BadRequest(config.ModuleIngest, c, status.InvalidRequestBody, "cannot open file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apperror.BadRequest(config.ModuleIngest, c, status.InvalidRequestBody, "cannot read file")
	}

	summary, err := h.service.IngestDocument(c.Context(), fh.Filename, data)
	if err != nil {
		return writeIngestError(c, err)
	}
	return apperror.Success(c, "document queued", summary)
}
