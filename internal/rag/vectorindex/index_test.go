package vectorindex

import (
	"context"
	"errors"
	"testing"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/apperrors"
	"github.com/cerebroai/docapi/internal/domain/docModel"
)

// mockVectorDB implements vectorDB.DataProcessor with function fields.
type mockVectorDB struct {
	OnCreateIndex    func(ctx context.Context, name string, dimension int) error
	OnIndexExists    func(ctx context.Context, name string) (bool, error)
	OnDropIndex      func(ctx context.Context, name string) error
	OnUpsertChunks   func(ctx context.Context, name string, doc docModel.Document, chunks []docModel.Chunk) error
	OnSearchByVector func(ctx context.Context, name string, vector []float32, candidateCount int) ([]docModel.ScoredChunk, error)
}

func (m *mockVectorDB) CreateIndex(ctx context.Context, name string, dimension int) error {
	if m.OnCreateIndex != nil {
		return m.OnCreateIndex(ctx, name, dimension)
	}
	return nil
}

func (m *mockVectorDB) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.OnIndexExists != nil {
		return m.OnIndexExists(ctx, name)
	}
	return true, nil
}

func (m *mockVectorDB) DropIndex(ctx context.Context, name string) error {
	if m.OnDropIndex != nil {
		return m.OnDropIndex(ctx, name)
	}
	return nil
}

func (m *mockVectorDB) UpsertChunks(ctx context.Context, name string, doc docModel.Document, chunks []docModel.Chunk) error {
	if m.OnUpsertChunks != nil {
		return m.OnUpsertChunks(ctx, name, doc, chunks)
	}
	return nil
}

func (m *mockVectorDB) SearchByVector(ctx context.Context, name string, vector []float32, candidateCount int) ([]docModel.ScoredChunk, error) {
	if m.OnSearchByVector != nil {
		return m.OnSearchByVector(ctx, name, vector, candidateCount)
	}
	return nil, nil
}

func queryVector() []float32 {
	return make([]float32, config.EmbeddingDimension)
}

func TestEnsureIndex_Idempotent(t *testing.T) {
	created := 0
	exists := false
	db := &mockVectorDB{
		OnIndexExists: func(ctx context.Context, name string) (bool, error) {
			return exists, nil
		},
		OnCreateIndex: func(ctx context.Context, name string, dimension int) error {
			created++
			exists = true
			return nil
		},
	}
	ix := New(db)

	if err := ix.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("first EnsureIndex failed: %v", err)
	}
	if err := ix.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("second EnsureIndex failed: %v", err)
	}

	if created != 1 {
		t.Errorf("CreateIndex called %d times; want 1", created)
	}
}

func TestQuery_DimensionMismatch(t *testing.T) {
	searched := false
	db := &mockVectorDB{
		OnSearchByVector: func(ctx context.Context, name string, v []float32, n int) ([]docModel.ScoredChunk, error) {
			searched = true
			return nil, nil
		},
	}
	ix := New(db)

	_, err := ix.Query(context.Background(), make([]float32, 100), "user-1", 5)
	if !errors.Is(err, apperrors.ErrDimensionMismatch) {
		t.Errorf("error = %v; want ErrDimensionMismatch", err)
	}
	if searched {
		t.Error("backend must not be queried when the dimension check fails")
	}
}

func TestQuery_InvalidLimit(t *testing.T) {
	ix := New(&mockVectorDB{})
	_, err := ix.Query(context.Background(), queryVector(), "user-1", 0)
	if !errors.Is(err, apperrors.ErrInvalidConfiguration) {
		t.Errorf("error = %v; want ErrInvalidConfiguration", err)
	}
}

func TestQuery_IndexMissing(t *testing.T) {
	db := &mockVectorDB{
		OnIndexExists: func(ctx context.Context, name string) (bool, error) {
			return false, nil
		},
	}
	ix := New(db)

	_, err := ix.Query(context.Background(), queryVector(), "user-1", 5)
	if !errors.Is(err, apperrors.ErrIndexNotFound) {
		t.Errorf("error = %v; want ErrIndexNotFound", err)
	}
}

func TestQuery_FiltersCrossOwnerCandidates(t *testing.T) {
	requestedCandidates := 0
	db := &mockVectorDB{
		OnSearchByVector: func(ctx context.Context, name string, v []float32, n int) ([]docModel.ScoredChunk, error) {
			requestedCandidates = n
			// ranked candidate set deliberately mixes owners
			return []docModel.ScoredChunk{
				{Score: 0.99, DocumentId: "doc-a", OwnerId: "intruder"},
				{Score: 0.95, DocumentId: "doc-b", OwnerId: "user-1"},
				{Score: 0.90, DocumentId: "doc-c", OwnerId: "intruder"},
				{Score: 0.85, DocumentId: "doc-d", OwnerId: "user-1"},
				{Score: 0.80, DocumentId: "doc-e", OwnerId: "user-1"},
			}, nil
		},
	}
	ix := New(db)

	results, err := ix.Query(context.Background(), queryVector(), "user-1", 2)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if requestedCandidates != 2*config.CandidateMultiplier {
		t.Errorf("candidate request = %d; want %d", requestedCandidates, 2*config.CandidateMultiplier)
	}

	if len(results) != 2 {
		t.Fatalf("result count = %d; want 2", len(results))
	}
	for _, r := range results {
		if r.OwnerId != "user-1" {
			t.Fatalf("cross-owner leakage: got result for %q", r.OwnerId)
		}
	}
	if results[0].DocumentId != "doc-b" || results[1].DocumentId != "doc-d" {
		t.Errorf("results out of rank order: %q, %q", results[0].DocumentId, results[1].DocumentId)
	}
	if results[0].Score < results[1].Score {
		t.Error("results not in descending score order")
	}
}

func TestQuery_BackendFailure(t *testing.T) {
	db := &mockVectorDB{
		OnSearchByVector: func(ctx context.Context, name string, v []float32, n int) ([]docModel.ScoredChunk, error) {
			return nil, errors.New("connection reset")
		},
	}
	ix := New(db)

	_, err := ix.Query(context.Background(), queryVector(), "user-1", 5)
	if !errors.Is(err, apperrors.ErrVectorSearch) {
		t.Errorf("error = %v; want ErrVectorSearch", err)
	}
}
