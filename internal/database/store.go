package database

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"pdf-chunk-queue/config"
	"pdf-chunk-queue/internal/core/ingest"
	"pdf-chunk-queue/internal/database/model"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("database: record not found")

// Store is the queue backend: single-row inserts that fill in the generated
// id, and read queries over documents and chunks. Inserts are atomic per
// row; there is no cross-row transaction.
type Store interface {
	CreateDocument(ctx context.Context, doc *model.Document) error
	CreateChunk(ctx context.Context, chunk *model.Chunk) error
	GetDocument(ctx context.Context, id int64) (*model.Document, error)
	// ListChunks returns the chunks of a document ordered by chunk_index.
	// An empty status returns all of them.
	ListChunks(ctx context.Context, documentID int64, status model.ChunkStatus) ([]model.Chunk, error)
	CountChunks(ctx context.Context, documentID int64) (int64, error)
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Open connects the store selected by cfg.Driver.
func Open(cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMySQL, "":
		s, err := openGormStore(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := openBunStore(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, &config.ConfigurationError{Problems: []string{fmt.Sprintf("unknown database driver %q", cfg.Driver)}}
	}
}

// contextStatus maps context failures to an HTTP-like status.
func contextStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, true
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, true
	}
	return 0, false
}

func writeError(err error, status func(error) int) error {
	if err == nil {
		return nil
	}
	if s, ok := contextStatus(err); ok {
		return ingest.NewStoreWriteError(s, err)
	}
	return ingest.NewStoreWriteError(status(err), err)
}
