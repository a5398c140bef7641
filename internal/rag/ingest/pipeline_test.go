package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/apperrors"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/internal/rag/embedding"
	"github.com/cerebroai/docapi/internal/rag/vectorDB/memoryDB"
	"github.com/cerebroai/docapi/internal/rag/vectorindex"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

// --- Mocks ---

type mockDocStore struct {
	mu    sync.Mutex
	docs  map[string]docModel.Document
	saves []docModel.Document
	fail  bool
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{docs: make(map[string]docModel.Document)}
}

func (m *mockDocStore) SaveDocument(ctx context.Context, doc docModel.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("store unavailable")
	}
	m.docs[doc.Id] = doc
	m.saves = append(m.saves, doc)
	return nil
}

func (m *mockDocStore) GetDocument(ctx context.Context, id string) (docModel.Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	return doc, ok
}

func (m *mockDocStore) DeleteDocument(ctx context.Context, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
}

type mockEmbedder struct {
	batchFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return make([]float32, config.EmbeddingDimension), nil
}

func (m *mockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if m.batchFunc != nil {
		return m.batchFunc(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = make([]float32, config.EmbeddingDimension)
	}
	return vectors, nil
}

func intp(n int) *int { return &n }

func newTestPipeline(store *mockDocStore, embedder *mockEmbedder) *Pipeline {
	logger_i.Init()
	embeddingService := embedding.NewServiceWithOptions(embedder, config.EmbeddingBatchSize, 0, 1, 0)
	index := vectorindex.New(memoryDB.NewStorage())
	nextId := 0
	return NewPipeline(store, embeddingService, index, func() string {
		nextId++
		return fmt.Sprintf("doc-%03d", nextId)
	})
}

// --- Unit Tests ---

func TestCreateDocument_StartsPending(t *testing.T) {
	store := newMockDocStore()
	p := newTestPipeline(store, &mockEmbedder{})

	doc, err := p.CreateDocument(context.Background(), "user-1", "application/pdf", "handbook.pdf")
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}

	saved, ok := store.GetDocument(context.Background(), doc.Id)
	if !ok {
		t.Fatal("document was not persisted")
	}
	if saved.ProcessingStatus != docModel.StatusPending || saved.VectorizationStatus != docModel.StatusPending {
		t.Errorf("statuses got %s/%s, want pending/pending", saved.ProcessingStatus, saved.VectorizationStatus)
	}
	if saved.Id == "" || saved.OwnerId != "user-1" {
		t.Errorf("unexpected identity: id=%q owner=%q", saved.Id, saved.OwnerId)
	}
}

func TestIngest_Success(t *testing.T) {
	store := newMockDocStore()
	p := newTestPipeline(store, &mockEmbedder{})

	text := strings.Repeat("lorem ipsum ", 200) // 2400 chars, 400 words
	opts := Options{ChunkSize: intp(1000), ChunkOverlap: intp(200)}

	doc, err := p.Ingest(context.Background(), text, "user-1", "application/pdf", "handbook.pdf", opts)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if doc.ProcessingStatus != docModel.StatusCompleted {
		t.Errorf("ProcessingStatus got %s, want completed", doc.ProcessingStatus)
	}
	if doc.VectorizationStatus != docModel.StatusCompleted {
		t.Errorf("VectorizationStatus got %s, want completed", doc.VectorizationStatus)
	}
	if doc.Metadata.TotalChunks != len(doc.Chunks) {
		t.Errorf("TotalChunks got %d, want %d", doc.Metadata.TotalChunks, len(doc.Chunks))
	}
	if doc.Metadata.WordCount != 400 {
		t.Errorf("WordCount got %d, want 400", doc.Metadata.WordCount)
	}
	if doc.Metadata.LastProcessed.IsZero() {
		t.Error("LastProcessed was not set")
	}
	for i, c := range doc.Chunks {
		if len(c.Embedding) != config.EmbeddingDimension {
			t.Fatalf("chunk %d embedding dimension got %d, want %d", i, len(c.Embedding), config.EmbeddingDimension)
		}
	}

	// the intermediate processing state must have been observable
	sawProcessing := false
	for _, s := range store.saves {
		if s.ProcessingStatus == docModel.StatusProcessing && s.VectorizationStatus == docModel.StatusPending {
			sawProcessing = true
		}
	}
	if !sawProcessing {
		t.Error("processing/pending state was never persisted")
	}
}

func TestIngest_EmbeddingFailure(t *testing.T) {
	store := newMockDocStore()
	embedder := &mockEmbedder{
		batchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("provider down")
		},
	}
	p := newTestPipeline(store, embedder)

	doc, err := p.Ingest(context.Background(), strings.Repeat("text ", 500), "user-1", "application/pdf", "doc.pdf", Options{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, apperrors.ErrEmbeddingGeneration) {
		t.Errorf("error got %v, want ErrEmbeddingGeneration", err)
	}

	if doc.ProcessingStatus != docModel.StatusFailed || doc.VectorizationStatus != docModel.StatusFailed {
		t.Errorf("statuses got %s/%s, want failed/failed", doc.ProcessingStatus, doc.VectorizationStatus)
	}
	if doc.Error == "" {
		t.Error("failure reason was not recorded on the document")
	}

	// terminal failed state must be what the store holds
	saved, _ := store.GetDocument(context.Background(), doc.Id)
	if saved.ProcessingStatus != docModel.StatusFailed {
		t.Errorf("persisted ProcessingStatus got %s, want failed", saved.ProcessingStatus)
	}
}

func TestIngest_PartialOptionsKeepOtherDefault(t *testing.T) {
	store := newMockDocStore()
	p := newTestPipeline(store, &mockEmbedder{})

	// 1200 chars with size 500: stride 300 under the default 200 overlap
	// yields 4 chunks, a silently dropped overlap would yield 3
	text := strings.Repeat("abcd ", 240)
	doc, err := p.Ingest(context.Background(), text, "user-1", "application/pdf", "doc.pdf", Options{ChunkSize: intp(500)})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if doc.Metadata.TotalChunks != 4 {
		t.Errorf("TotalChunks got %d, want 4", doc.Metadata.TotalChunks)
	}
	if doc.Chunks[1].Start != 300 {
		t.Errorf("second chunk starts at %d, want 300 (size 500 minus default overlap 200)", doc.Chunks[1].Start)
	}

	// an explicit zero overlap must survive, not be replaced by the default
	doc, err = p.Ingest(context.Background(), text, "user-1", "application/pdf", "doc.pdf", Options{ChunkSize: intp(500), ChunkOverlap: intp(0)})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if doc.Metadata.TotalChunks != 3 {
		t.Errorf("TotalChunks got %d, want 3", doc.Metadata.TotalChunks)
	}

	// overriding only the overlap leaves the 1000 default size in place
	doc, err = p.Ingest(context.Background(), text, "user-1", "application/pdf", "doc.pdf", Options{ChunkOverlap: intp(600)})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if got := doc.Chunks[0].End; got != 1000 {
		t.Errorf("first chunk ends at %d, want 1000", got)
	}
	if doc.Chunks[1].Start != 400 {
		t.Errorf("second chunk starts at %d, want 400", doc.Chunks[1].Start)
	}
}

func TestIngest_InvalidChunkOptions(t *testing.T) {
	store := newMockDocStore()
	p := newTestPipeline(store, &mockEmbedder{})

	_, err := p.Ingest(context.Background(), "some text", "user-1", "application/pdf", "doc.pdf", Options{ChunkSize: intp(100), ChunkOverlap: intp(100)})
	if !errors.Is(err, apperrors.ErrInvalidConfiguration) {
		t.Errorf("error got %v, want ErrInvalidConfiguration", err)
	}
}

func TestRun_UnsupportedMimeType(t *testing.T) {
	store := newMockDocStore()
	p := newTestPipeline(store, &mockEmbedder{})

	doc, err := p.CreateDocument(context.Background(), "user-1", "image/png", "photo.png")
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}

	result, err := p.Run(context.Background(), doc, []byte{0x89, 0x50, 0x4e, 0x47}, Options{})
	if !errors.Is(err, apperrors.ErrUnsupportedMimeType) {
		t.Fatalf("error got %v, want ErrUnsupportedMimeType", err)
	}

	if result.ProcessingStatus != docModel.StatusFailed || result.VectorizationStatus != docModel.StatusFailed {
		t.Errorf("statuses got %s/%s, want failed/failed", result.ProcessingStatus, result.VectorizationStatus)
	}
	if result.Error == "" {
		t.Error("failure reason was not recorded")
	}
}

func TestIngest_SearchableAfterCompletion(t *testing.T) {
	store := newMockDocStore()
	vectorStore := memoryDB.NewStorage()
	embedder := &mockEmbedder{
		batchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i := range vectors {
				vectors[i] = make([]float32, config.EmbeddingDimension)
				vectors[i][0] = 1 // identical direction so everything matches the query
			}
			return vectors, nil
		},
	}
	logger_i.Init()
	embeddingService := embedding.NewServiceWithOptions(embedder, config.EmbeddingBatchSize, 0, 1, 0)
	index := vectorindex.New(vectorStore)
	p := NewPipeline(store, embeddingService, index, func() string { return "doc-1" })

	_, err := p.Ingest(context.Background(), strings.Repeat("content ", 300), "user-1", "application/pdf", "doc.pdf", Options{})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	query := make([]float32, config.EmbeddingDimension)
	query[0] = 1
	matches, err := index.Query(context.Background(), query, "user-1", config.SearchTopK)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) == 0 {
		t.Error("completed document was not retrievable")
	}
}
