package model

import "time"

// DocumentStatus is stored verbatim in documents.status.
type DocumentStatus string

const (
	DocumentProcessing DocumentStatus = "processing"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentFailed     DocumentStatus = "failed"
)

const TableNameDocument = "documents"

// Document is one ingested source document. TotalChunks is written once,
// already final, together with the row.
type Document struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Filename    string         `gorm:"column:filename;type:varchar(512);not null" json:"filename"`
	TotalPages  int            `gorm:"column:total_pages;not null" json:"total_pages"`
	TotalChunks int            `gorm:"column:total_chunks;not null" json:"total_chunks"`
	Status      DocumentStatus `gorm:"column:status;type:varchar(32);not null;default:processing;index" json:"status"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (*Document) TableName() string {
	return TableNameDocument
}
