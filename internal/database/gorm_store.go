package database

import (
	"context"
	"errors"
	"net/http"

	"pdf-chunk-queue/config"
	"pdf-chunk-queue/internal/database/model"

	"gorm.io/gorm"
)

// GormStore keeps the queue in MySQL through gorm.
type GormStore struct {
	db *gorm.DB
}

func openGormStore(cfg config.DatabaseConfig) (*GormStore, error) {
	db, err := connect(cfg)
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// NewGormStore wraps an already opened connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateDocument(ctx context.Context, doc *model.Document) error {
	return writeError(createEntity(ctx, s.db, doc), gormStatus)
}

func (s *GormStore) CreateChunk(ctx context.Context, chunk *model.Chunk) error {
	return writeError(createEntity(ctx, s.db, chunk), gormStatus)
}

func (s *GormStore) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	return getEntityByID[model.Document](ctx, s.db, id)
}

func (s *GormStore) ListChunks(ctx context.Context, documentID int64, status model.ChunkStatus) ([]model.Chunk, error) {
	q := s.db.WithContext(ctx).Where("document_id = ?", documentID)
	if status != "" {
		q = q.Where("processing_status = ?", status)
	}
	var chunks []model.Chunk
	if err := q.Order("chunk_index ASC").Find(&chunks).Error; err != nil {
		return nil, err
	}
	return chunks, nil
}

func (s *GormStore) CountChunks(ctx context.Context, documentID int64) (int64, error) {
	return countEntities[model.Chunk](ctx, s.db, "document_id = ?", documentID)
}

func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&model.Document{}, &model.Chunk{})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormStatus classifies errors translated by gorm's dialect translator.
func gormStatus(err error) int {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusConflict
	case errors.Is(err, gorm.ErrInvalidData), errors.Is(err, gorm.ErrInvalidValue):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
