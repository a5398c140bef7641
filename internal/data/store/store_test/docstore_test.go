package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/data/redisStore"
	"github.com/cerebroai/docapi/internal/data/store"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/redis/go-redis/v9"
)

func TestRedisDocumentStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	docStore := store.TestDocumentStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	docID := "doc_abc_123"

	testDoc := docModel.Document{
		Id:                  docID,
		OwnerId:             "user-7",
		OriginalName:        "handbook.pdf",
		MimeType:            "application/pdf",
		ProcessingStatus:    docModel.StatusProcessing,
		VectorizationStatus: docModel.StatusPending,
		Chunks: []docModel.Chunk{
			{Content: "first chunk", Index: 0, Start: 0, End: 11},
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := docStore.SaveDocument(ctx, testDoc); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}

		retrieved, found := docStore.GetDocument(ctx, docID)
		if !found {
			t.Fatal("Document was saved but not found in Redis")
		}

		if retrieved.OwnerId != testDoc.OwnerId {
			t.Errorf("Owner mismatch! Got %s, want %s", retrieved.OwnerId, testDoc.OwnerId)
		}
		if retrieved.ProcessingStatus != docModel.StatusProcessing {
			t.Errorf("Status mismatch! Got %s", retrieved.ProcessingStatus)
		}
		if len(retrieved.Chunks) != 1 || retrieved.Chunks[0].Content != "first chunk" {
			t.Errorf("Chunks did not roundtrip: %+v", retrieved.Chunks)
		}
	})

	t.Run("Status Update Overwrites", func(t *testing.T) {
		testDoc.ProcessingStatus = docModel.StatusCompleted
		testDoc.VectorizationStatus = docModel.StatusCompleted
		if err := docStore.SaveDocument(ctx, testDoc); err != nil {
			t.Fatalf("SaveDocument failed: %v", err)
		}

		retrieved, _ := docStore.GetDocument(ctx, docID)
		if retrieved.VectorizationStatus != docModel.StatusCompleted {
			t.Errorf("Expected completed vectorization, got %s", retrieved.VectorizationStatus)
		}
	})

	t.Run("Get Non-Existent Document", func(t *testing.T) {
		_, found := docStore.GetDocument(ctx, "ghost-id")
		if found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Document", func(t *testing.T) {
		docStore.DeleteDocument(ctx, docID)

		if mr.Exists(docID) {
			t.Error("Document still exists in Redis after DeleteDocument call")
		}
	})
}

func TestInMemoryDocumentStore_Race(t *testing.T) {
	docStore := store.InitInMemoryDocumentStore()
	ctx := context.Background()
	doc := docModel.Document{Id: "race-doc"}

	const workers = 50
	for i := 0; i < workers; i++ {
		go func() {
			_ = docStore.SaveDocument(ctx, doc)
			_, _ = docStore.GetDocument(ctx, "race-doc")
		}()
	}
}
