package database

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"pdf-chunk-queue/config"
	"pdf-chunk-queue/internal/database/model"
	"pdf-chunk-queue/pkg/logger"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

type documentRow struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Filename    string    `bun:"filename,notnull"`
	TotalPages  int       `bun:"total_pages,notnull"`
	TotalChunks int       `bun:"total_chunks,notnull"`
	Status      string    `bun:"status,notnull,default:'processing'"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

type chunkRow struct {
	bun.BaseModel `bun:"table:chunks,alias:c"`

	ID               int64     `bun:"id,pk,autoincrement"`
	DocumentID       int64     `bun:"document_id,notnull,unique:chunks_document_index"`
	ChunkIndex       int       `bun:"chunk_index,notnull,unique:chunks_document_index"`
	ChunkText        string    `bun:"chunk_text,notnull,type:text"`
	EstimatedPages   string    `bun:"estimated_pages,notnull"`
	ProcessingStatus string    `bun:"processing_status,notnull,default:'pending'"`
	RetryCount       int       `bun:"retry_count,notnull,default:0"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// BunStore keeps the queue in PostgreSQL (Supabase included) through bun.
type BunStore struct {
	db *bun.DB
}

func openBunStore(cfg config.DatabaseConfig) (*BunStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.BuildDSN())))
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)

	db := bun.NewDB(sqldb, pgdialect.New())
	if logger.IsDebug() {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &BunStore{db: db}, nil
}

// NewBunStore wraps an already opened bun connection.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

func (s *BunStore) CreateDocument(ctx context.Context, doc *model.Document) error {
	row := &documentRow{
		Filename:    doc.Filename,
		TotalPages:  doc.TotalPages,
		TotalChunks: doc.TotalChunks,
		Status:      string(doc.Status),
	}
	if _, err := s.db.NewInsert().Model(row).Returning("id, created_at").Exec(ctx); err != nil {
		return writeError(err, pgStatus)
	}
	doc.ID = row.ID
	doc.CreatedAt = row.CreatedAt
	return nil
}

func (s *BunStore) CreateChunk(ctx context.Context, chunk *model.Chunk) error {
	row := &chunkRow{
		DocumentID:       chunk.DocumentID,
		ChunkIndex:       chunk.ChunkIndex,
		ChunkText:        chunk.ChunkText,
		EstimatedPages:   chunk.EstimatedPages,
		ProcessingStatus: string(chunk.ProcessingStatus),
		RetryCount:       chunk.RetryCount,
	}
	if _, err := s.db.NewInsert().Model(row).Returning("id, created_at").Exec(ctx); err != nil {
		return writeError(err, pgStatus)
	}
	chunk.ID = row.ID
	chunk.CreatedAt = row.CreatedAt
	return nil
}

func (s *BunStore) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	row := new(documentRow)
	if err := s.db.NewSelect().Model(row).Where("d.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model.Document{
		ID:          row.ID,
		Filename:    row.Filename,
		TotalPages:  row.TotalPages,
		TotalChunks: row.TotalChunks,
		Status:      model.DocumentStatus(row.Status),
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (s *BunStore) ListChunks(ctx context.Context, documentID int64, status model.ChunkStatus) ([]model.Chunk, error) {
	var rows []chunkRow
	q := s.db.NewSelect().Model(&rows).Where("c.document_id = ?", documentID)
	if status != "" {
		q = q.Where("c.processing_status = ?", string(status))
	}
	if err := q.Order("c.chunk_index ASC").Scan(ctx); err != nil {
		return nil, err
	}

	chunks := make([]model.Chunk, 0, len(rows))
	for _, r := range rows {
		chunks = append(chunks, model.Chunk{
			ID:               r.ID,
			DocumentID:       r.DocumentID,
			ChunkIndex:       r.ChunkIndex,
			ChunkText:        r.ChunkText,
			EstimatedPages:   r.EstimatedPages,
			ProcessingStatus: model.ChunkStatus(r.ProcessingStatus),
			RetryCount:       r.RetryCount,
			CreatedAt:        r.CreatedAt,
		})
	}
	return chunks, nil
}

func (s *BunStore) CountChunks(ctx context.Context, documentID int64) (int64, error) {
	n, err := s.db.NewSelect().Model((*chunkRow)(nil)).Where("c.document_id = ?", documentID).Count(ctx)
	return int64(n), err
}

func (s *BunStore) Migrate(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*documentRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return err
	}
	if _, err := s.db.NewCreateTable().
		Model((*chunkRow)(nil)).
		IfNotExists().
		ForeignKey(`("document_id") REFERENCES "documents" ("id") ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return err
	}
	_, err := s.db.NewCreateIndex().
		Model((*chunkRow)(nil)).
		Index("chunks_processing_status_idx").
		Column("processing_status").
		IfNotExists().
		Exec(ctx)
	return err
}

func (s *BunStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *BunStore) Close() error {
	return s.db.Close()
}

// pgStatus classifies PostgreSQL errors by SQLSTATE class.
func pgStatus(err error) int {
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) {
		return http.StatusBadGateway
	}
	switch {
	case pgErr.IntegrityViolation():
		return http.StatusConflict
	case pgErr.StatementTimeout():
		return http.StatusGatewayTimeout
	case strings.HasPrefix(pgErr.Field('C'), "22"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
