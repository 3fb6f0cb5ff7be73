package ingest

import (
	"errors"

	"pdf-chunk-queue/config"
	coreingest "pdf-chunk-queue/internal/core/ingest"
	"pdf-chunk-queue/pkg/apperror"
	"pdf-chunk-queue/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

type partialIngestionData struct {
	DocumentID    int64 `json:"document_id"`
	ChunksWritten int   `json:"chunks_written"`
	TotalChunks   int   `json:"total_chunks"`
}

// writeIngestError maps ingestion failures onto HTTP statuses. Input
// errors are 4xx and left nothing in the queue; a partial ingestion
// carries the state an operator needs to repair the document.
func writeIngestError(c fiber.Ctx, err error) error {
	var (
		fileTypeErr *coreingest.InvalidFileTypeError
		openErr     *coreingest.DocumentOpenError
		partialErr  *coreingest.PartialIngestionError
		storeErr    *coreingest.StoreWriteError
		cfgErr      *config.ConfigurationError
	)

	switch {
	case errors.As(err, &fileTypeErr):
		return apperror.WriteError(config.ModuleIngest, c, fiber.StatusBadRequest, status.InvalidFileType, err.Error(), nil)
	case errors.As(err, &openErr):
		return apperror.WriteError(config.ModuleExtractor, c, fiber.StatusUnprocessableEntity, status.DocumentOpen, err.Error(), nil)
	case errors.Is(err, coreingest.ErrNoExtractableText):
		return apperror.WriteError(config.ModuleIngest, c, fiber.StatusUnprocessableEntity, status.NoExtractableText, err.Error(), nil)
	case errors.As(err, &partialErr):
		return apperror.WriteError(config.ModuleIngest, c, fiber.StatusInternalServerError, status.PartialIngestion, err.Error(), partialIngestionData{
			DocumentID:    partialErr.DocumentID,
			ChunksWritten: partialErr.Written,
			TotalChunks:   partialErr.Total,
		})
	case errors.As(err, &storeErr):
		httpStatus := storeErr.Status
		if httpStatus < 400 {
			httpStatus = fiber.StatusBadGateway
		}
		return apperror.WriteError(config.ModuleDatabase, c, httpStatus, status.StoreWrite, err.Error(), nil)
	case errors.As(err, &cfgErr):
		return apperror.WriteError(config.ModuleSetting, c, fiber.StatusInternalServerError, status.Configuration, err.Error(), nil)
	default:
		return apperror.InternalError(config.ModuleIngest, c, err)
	}
}
