package model

import "time"

// ChunkStatus is the queue state of a chunk row.
type ChunkStatus string

const (
	ChunkPending    ChunkStatus = "pending"
	ChunkInProgress ChunkStatus = "in_progress"
	ChunkDone       ChunkStatus = "done"
	ChunkFailed     ChunkStatus = "failed"
)

// Valid reports whether s is one of the known chunk states.
func (s ChunkStatus) Valid() bool {
	switch s {
	case ChunkPending, ChunkInProgress, ChunkDone, ChunkFailed:
		return true
	}
	return false
}

const TableNameChunk = "chunks"

// Chunk is one queued segment of a document. ChunkIndex is 1-based and
// unique per document.
type Chunk struct {
	ID               int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DocumentID       int64       `gorm:"column:document_id;not null;uniqueIndex:idx_chunks_document_index,priority:1" json:"document_id"`
	ChunkIndex       int         `gorm:"column:chunk_index;not null;uniqueIndex:idx_chunks_document_index,priority:2" json:"chunk_index"`
	ChunkText        string      `gorm:"column:chunk_text;type:longtext;not null" json:"chunk_text"`
	EstimatedPages   string      `gorm:"column:estimated_pages;type:varchar(32);not null" json:"estimated_pages"`
	ProcessingStatus ChunkStatus `gorm:"column:processing_status;type:varchar(32);not null;default:pending;index" json:"processing_status"`
	RetryCount       int         `gorm:"column:retry_count;not null;default:0" json:"retry_count"`
	CreatedAt        time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (*Chunk) TableName() string {
	return TableNameChunk
}
