package ingest

import (
	"context"

	"pdf-chunk-queue/config"
	coreingest "pdf-chunk-queue/internal/core/ingest"
	"pdf-chunk-queue/pkg/logger"
)

// Service is the entry point used by the API and the CLI: it validates an
// uploaded document, extracts its pages and hands them to the Producer.
type Service struct {
	allowed   []string
	extractor coreingest.Extractor
	archiver  Archiver
	producer  *Producer
}

// NewService wires a Service. archiver may be nil to skip archival.
func NewService(cfg config.IngestConfig, store Store, extractor coreingest.Extractor, archiver Archiver) *Service {
	allowed := cfg.AllowedExtensions
	if len(allowed) == 0 {
		allowed = []string{".pdf"}
	}
	return &Service{
		allowed:   allowed,
		extractor: extractor,
		archiver:  archiver,
		producer:  NewProducer(Config{ChunkTargetSize: cfg.ChunkTargetSize}, store),
	}
}

// IngestDocument turns one uploaded document into queued chunks.
func (s *Service) IngestDocument(ctx context.Context, filename string, data []byte) (*Summary, error) {
	if err := coreingest.CheckFileType(filename, data, s.allowed); err != nil {
		return nil, err
	}

	if s.archiver != nil {
		location, err := s.archiver.Archive(ctx, filename, data)
		if err != nil {
			logger.Error(err, "%v: archive upload failed: %s", config.ModuleIngest, filename)
			return nil, coreingest.NewStoreWriteError(0, err)
		}
		logger.Info("%v: archived %s to %s", config.ModuleIngest, filename, location)
	}

	pages, err := s.extractor.Extract(data)
	if err != nil {
		logger.Error(err, "%v: extract failed: %s", config.ModuleExtractor, filename)
		return nil, err
	}
	logger.WithFields(map[string]interface{}{
		"filename": filename,
		"pages":    len(pages),
	}).Info("ingest: extracted pages")

	return s.producer.Ingest(ctx, filename, pages)
}
