package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cerebroai/docapi/internal/api"
	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/data/store"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/internal/job"
	"github.com/cerebroai/docapi/internal/rag"
	"github.com/cerebroai/docapi/internal/rag/embedding"
	"github.com/cerebroai/docapi/internal/rag/embedding/mockProvider"
	"github.com/cerebroai/docapi/internal/rag/ingest"
	"github.com/cerebroai/docapi/internal/rag/vectorDB/memoryDB"
	"github.com/cerebroai/docapi/internal/rag/vectorindex"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

var (
	setupOnce  sync.Once
	testDocs   *store.InMemoryDocumentStore
	testRouter *chi.Mux
)

// setupHandlers wires the handler singleton over in-memory stores and mounts
// the routes behind a trace-injecting middleware, the way the server does.
func setupHandlers() (*chi.Mux, *store.InMemoryDocumentStore) {
	setupOnce.Do(func() {
		logger_i.Init()
		testDocs = store.InitInMemoryDocumentStore()

		embeddingService := embedding.NewServiceWithOptions(mockProvider.New(), config.EmbeddingBatchSize, 0, 1, 0)
		index := vectorindex.New(memoryDB.NewStorage())
		nextId := 0
		newId := func() string {
			nextId++
			return fmt.Sprintf("doc-%03d", nextId)
		}

		pipeline := ingest.NewPipeline(testDocs, embeddingService, index, newId)
		queryService := rag.NewService(embeddingService, index, newId)
		service := job.InitJobService(job.ServiceConfig{
			TaskChannel:       make(chan job.Task, 4),
			DispatcherChannel: make(chan bool, 4),
		})
		InitDocumentHandler(service, pipeline, testDocs, queryService)

		testRouter = chi.NewRouter()
		testRouter.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := context.WithValue(r.Context(), config.TRACE_ID_KEY, "trace-test")
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
		testRouter.Get("/documents/{id}", GetDocumentHandler)
		testRouter.Get("/documents/{id}/status", GetStatusHandler)
		testRouter.Get("/chat/history/{ownerId}", GetHistoryHandler)
	})
	return testRouter, testDocs
}

func TestGetDocumentHandler_ReturnsFullDetails(t *testing.T) {
	router, docs := setupHandlers()

	seeded := docModel.Document{
		Id:                  "details-1",
		OwnerId:             "user-7",
		OriginalName:        "handbook.pdf",
		MimeType:            "application/pdf",
		Content:             "the extracted text of the handbook",
		ProcessingStatus:    docModel.StatusCompleted,
		VectorizationStatus: docModel.StatusCompleted,
		Metadata: docModel.Metadata{
			TotalChunks:   3,
			WordCount:     6,
			LastProcessed: time.Now(),
		},
		CreatedTime: time.Now(),
	}
	if err := docs.SaveDocument(context.Background(), seeded); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/documents/details-1", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status got %d, want 200", recorder.Code)
	}
	var response api.DocumentDetailsResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if response.OwnerId != "user-7" || response.MimeType != "application/pdf" {
		t.Errorf("identity got owner=%q mime=%q, want user-7/application/pdf", response.OwnerId, response.MimeType)
	}
	if response.ContentLength != len(seeded.Content) {
		t.Errorf("ContentLength got %d, want %d", response.ContentLength, len(seeded.Content))
	}
	if response.Metadata == nil || response.Metadata.TotalChunks != 3 {
		t.Errorf("metadata got %+v, want 3 chunks", response.Metadata)
	}
}

func TestGetDocumentHandler_NotFound(t *testing.T) {
	router, _ := setupHandlers()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/documents/nope", nil))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status got %d, want 404", recorder.Code)
	}
}

func TestGetHistoryHandler_EmptyHistory(t *testing.T) {
	router, _ := setupHandlers()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/chat/history/user-9", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status got %d, want 200", recorder.Code)
	}
	var response api.ChatHistoryResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if response.OwnerId != "user-9" {
		t.Errorf("OwnerId got %q, want user-9", response.OwnerId)
	}
	if response.Messages == nil || len(response.Messages) != 0 {
		t.Errorf("Messages got %v, want an empty list", response.Messages)
	}
}
