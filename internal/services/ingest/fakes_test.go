package ingest

import (
	"context"
	"errors"
	"net/http"

	coreingest "pdf-chunk-queue/internal/core/ingest"
	"pdf-chunk-queue/internal/database/model"
)

// memoryStore records writes in order and can fail on demand.
type memoryStore struct {
	docs        []model.Document
	chunks      []model.Chunk
	calls       []string
	failDoc     error
	failChunkAt int // 1-based chunk_index whose write fails
	nextID      int64
}

func (s *memoryStore) CreateDocument(_ context.Context, doc *model.Document) error {
	s.calls = append(s.calls, "document")
	if s.failDoc != nil {
		return s.failDoc
	}
	s.nextID++
	doc.ID = s.nextID
	s.docs = append(s.docs, *doc)
	return nil
}

func (s *memoryStore) CreateChunk(_ context.Context, chunk *model.Chunk) error {
	s.calls = append(s.calls, "chunk")
	if s.failChunkAt != 0 && chunk.ChunkIndex == s.failChunkAt {
		return coreingest.NewStoreWriteError(http.StatusServiceUnavailable, errors.New("store unavailable"))
	}
	s.nextID++
	chunk.ID = s.nextID
	s.chunks = append(s.chunks, *chunk)
	return nil
}

func (s *memoryStore) writes() int {
	return len(s.docs) + len(s.chunks)
}

type stubExtractor struct {
	pages  []string
	err    error
	called bool
}

func (e *stubExtractor) Extract(_ []byte) ([]string, error) {
	e.called = true
	return e.pages, e.err
}

type stubArchiver struct {
	got      []byte
	location string
	err      error
}

func (a *stubArchiver) Archive(_ context.Context, _ string, data []byte) (string, error) {
	a.got = data
	return a.location, a.err
}
