package documents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-chunk-queue/internal/database"
	"pdf-chunk-queue/internal/database/model"
	"pdf-chunk-queue/pkg/apperror"
	"pdf-chunk-queue/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	docs       map[int64]*model.Document
	chunks     []model.Chunk
	lastStatus model.ChunkStatus
	err        error
}

func (q *fakeQueue) GetDocument(_ context.Context, id int64) (*model.Document, error) {
	if q.err != nil {
		return nil, q.err
	}
	doc, ok := q.docs[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return doc, nil
}

func (q *fakeQueue) ListChunks(_ context.Context, documentID int64, s model.ChunkStatus) ([]model.Chunk, error) {
	q.lastStatus = s
	var out []model.Chunk
	for _, ch := range q.chunks {
		if ch.DocumentID == documentID && (s == "" || ch.ProcessingStatus == s) {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (q *fakeQueue) CountChunks(_ context.Context, documentID int64) (int64, error) {
	var n int64
	for _, ch := range q.chunks {
		if ch.DocumentID == documentID {
			n++
		}
	}
	return n, nil
}

func newQueue() *fakeQueue {
	return &fakeQueue{
		docs: map[int64]*model.Document{
			1: {ID: 1, Filename: "book.pdf", TotalPages: 20, TotalChunks: 2, Status: model.DocumentProcessing},
			2: {ID: 2, Filename: "cut.pdf", TotalPages: 50, TotalChunks: 5, Status: model.DocumentProcessing},
		},
		chunks: []model.Chunk{
			{ID: 10, DocumentID: 1, ChunkIndex: 1, ChunkText: "first", EstimatedPages: "1 a 10", ProcessingStatus: model.ChunkPending},
			{ID: 11, DocumentID: 1, ChunkIndex: 2, ChunkText: "second", EstimatedPages: "10 a 20", ProcessingStatus: model.ChunkDone},
			{ID: 12, DocumentID: 2, ChunkIndex: 1, ChunkText: "only", EstimatedPages: "1 a 10", ProcessingStatus: model.ChunkPending},
		},
	}
}

func newTestApp(q QueueReader) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, NewHandler(q))
	return app
}

type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type documentBody struct {
	ID              int64 `json:"id"`
	TotalChunks     int   `json:"total_chunks"`
	PersistedChunks int64 `json:"persisted_chunks"`
	Incomplete      bool  `json:"incomplete"`
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	return resp
}

func TestHandleGetDocument(t *testing.T) {
	app := newTestApp(newQueue())

	tests := []struct {
		target         string
		wantIncomplete bool
		wantPersisted  int64
	}{
		{target: "/documents/1", wantIncomplete: false, wantPersisted: 2},
		{target: "/documents/2", wantIncomplete: true, wantPersisted: 1},
	}
	for _, tt := range tests {
		resp := get(t, app, tt.target)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out envelope[documentBody]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		resp.Body.Close()
		assert.Equal(t, tt.wantPersisted, out.Data.PersistedChunks, tt.target)
		assert.Equal(t, tt.wantIncomplete, out.Data.Incomplete, tt.target)
	}
}

func TestHandleGetDocument_Errors(t *testing.T) {
	app := newTestApp(newQueue())

	resp := get(t, app, "/documents/99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var out apperror.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, apperror.Code(status.DocumentNotFound), out.ErrorCode)

	resp = get(t, app, "/documents/abc")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	broken := newQueue()
	broken.err = errors.New("connection reset")
	resp = get(t, newTestApp(broken), "/documents/1")
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHandleListChunks(t *testing.T) {
	q := newQueue()
	app := newTestApp(q)

	resp := get(t, app, "/documents/1/chunks")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all envelope[chunksResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	resp.Body.Close()
	require.Len(t, all.Data.Chunks, 2)
	assert.Equal(t, 1, all.Data.Chunks[0].ChunkIndex)
	assert.Equal(t, 2, all.Data.Chunks[1].ChunkIndex)

	resp = get(t, app, "/documents/1/chunks?status=pending")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending envelope[chunksResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pending))
	resp.Body.Close()
	assert.Equal(t, model.ChunkPending, q.lastStatus)
	require.Len(t, pending.Data.Chunks, 1)
	assert.Equal(t, "first", pending.Data.Chunks[0].ChunkText)

	resp = get(t, app, "/documents/1/chunks?status=sleeping")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = get(t, app, "/documents/99/chunks")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleListChunks_EmptyIsArray(t *testing.T) {
	q := newQueue()
	q.docs[3] = &model.Document{ID: 3, Filename: "empty.pdf", TotalPages: 1, TotalChunks: 1}
	app := newTestApp(q)

	resp := get(t, app, "/documents/3/chunks?status=failed")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw struct {
		Data struct {
			Chunks json.RawMessage `json:"chunks"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	resp.Body.Close()
	assert.JSONEq(t, `[]`, string(raw.Data.Chunks))
}
