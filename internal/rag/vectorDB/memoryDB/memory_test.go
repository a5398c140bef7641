package memoryDB

import (
	"context"
	"math"
	"testing"

	"github.com/cerebroai/docapi/internal/domain/docModel"
)

func vec(values ...float32) []float32 { return values }

func upsertOne(t *testing.T, s *Storage, indexName string, docId string, ownerId string, content string, embedding []float32) {
	t.Helper()
	err := s.UpsertChunks(context.Background(), indexName, docModel.Document{Id: docId, OwnerId: ownerId}, []docModel.Chunk{
		{Content: content, Embedding: embedding},
	})
	if err != nil {
		t.Fatalf("UpsertChunks failed: %v", err)
	}
}

func TestSearchByVector_RanksByCosine(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	if err := s.CreateIndex(ctx, "chunks", 3); err != nil {
		t.Fatalf("CreateIndex failed: %v", err)
	}

	upsertOne(t, s, "chunks", "doc-a", "user-1", "aligned", vec(1, 0, 0))
	upsertOne(t, s, "chunks", "doc-b", "user-1", "diagonal", vec(1, 1, 0))
	upsertOne(t, s, "chunks", "doc-c", "user-1", "orthogonal", vec(0, 0, 1))

	results, err := s.SearchByVector(ctx, "chunks", vec(1, 0, 0), 10)
	if err != nil {
		t.Fatalf("SearchByVector failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("results got %d, want 3", len(results))
	}
	if results[0].Chunk.Content != "aligned" {
		t.Errorf("best match got %q, want aligned", results[0].Chunk.Content)
	}
	if math.Abs(float64(results[0].Score)-1.0) > 1e-6 {
		t.Errorf("aligned score got %f, want 1.0", results[0].Score)
	}
	if results[1].Chunk.Content != "diagonal" {
		t.Errorf("second match got %q, want diagonal", results[1].Chunk.Content)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results out of order at %d", i)
		}
	}
}

func TestSearchByVector_TruncatesToCandidateCount(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	s.CreateIndex(ctx, "chunks", 2)

	for i := 0; i < 8; i++ {
		upsertOne(t, s, "chunks", "doc-a", "user-1", "c", vec(1, float32(i)))
	}

	results, err := s.SearchByVector(ctx, "chunks", vec(1, 0), 3)
	if err != nil {
		t.Fatalf("SearchByVector failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("results got %d, want 3", len(results))
	}
}

func TestStorage_Errors(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	if err := s.CreateIndex(ctx, "chunks", 0); err == nil {
		t.Error("CreateIndex accepted a zero dimension")
	}

	if _, err := s.SearchByVector(ctx, "missing", vec(1), 5); err == nil {
		t.Error("SearchByVector succeeded on a missing index")
	}

	s.CreateIndex(ctx, "chunks", 3)
	if _, err := s.SearchByVector(ctx, "chunks", vec(1, 2), 5); err == nil {
		t.Error("SearchByVector accepted a wrong-dimension query")
	}

	err := s.UpsertChunks(ctx, "chunks", docModel.Document{Id: "d", OwnerId: "u"}, []docModel.Chunk{{Embedding: vec(1)}})
	if err == nil {
		t.Error("UpsertChunks accepted a wrong-dimension vector")
	}
}

func TestDropIndex_RemovesData(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	s.CreateIndex(ctx, "chunks", 2)
	upsertOne(t, s, "chunks", "doc-a", "user-1", "c", vec(1, 0))

	if err := s.DropIndex(ctx, "chunks"); err != nil {
		t.Fatalf("DropIndex failed: %v", err)
	}
	exists, _ := s.IndexExists(ctx, "chunks")
	if exists {
		t.Error("index still exists after drop")
	}
}
