package bootstrap

import (
	"context"
	"time"

	"pdf-chunk-queue/config"
	coreingest "pdf-chunk-queue/internal/core/ingest"
	"pdf-chunk-queue/internal/database"
	ingestsvc "pdf-chunk-queue/internal/services/ingest"
	"pdf-chunk-queue/pkg/logger"
)

// ConnectStoreWithRetry opens the configured store and waits until it
// answers a ping. Databases started next to the service may take a while.
func ConnectStoreWithRetry(cfg config.DatabaseConfig, attempts int, perAttemptTimeout, delay time.Duration) (database.Store, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		store, err := database.Open(cfg)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), perAttemptTimeout)
			err = store.Ping(ctx)
			cancel()
			if err == nil {
				return store, nil
			}
			_ = store.Close()
		}
		lastErr = err
		logger.Warn("%v: store not ready (attempt %d/%d): %v", config.ModuleDatabase, i+1, attempts, err)
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return nil, lastErr
}

// NewIngestService connects the store, migrates it when configured and
// builds the ingest service with the PDF extractor and optional S3 archive.
func NewIngestService(ctx context.Context, cfg *config.Config) (*ingestsvc.Service, database.Store, error) {
	store, err := ConnectStoreWithRetry(cfg.Database, 10, 5*time.Second, 2*time.Second)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
	}

	var archiver ingestsvc.Archiver
	if cfg.S3.Enabled {
		a, err := ingestsvc.NewS3Archiver(ctx, cfg.S3)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		archiver = a
	}

	return ingestsvc.NewService(cfg.Ingest, store, coreingest.PDFExtractor{}, archiver), store, nil
}
