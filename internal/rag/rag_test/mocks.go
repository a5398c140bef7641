package rag_test

import (
	"context"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/docModel"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnCreateIndex    func(ctx context.Context, indexName string, dimension int) error
	OnIndexExists    func(ctx context.Context, indexName string) (bool, error)
	OnDropIndex      func(ctx context.Context, indexName string) error
	OnUpsertChunks   func(ctx context.Context, indexName string, doc docModel.Document, chunks []docModel.Chunk) error
	OnSearchByVector func(ctx context.Context, indexName string, vector []float32, candidateCount int) ([]docModel.ScoredChunk, error)
}

func (m *MockVectorDB) CreateIndex(ctx context.Context, indexName string, dimension int) error {
	if m.OnCreateIndex != nil {
		return m.OnCreateIndex(ctx, indexName, dimension)
	}
	return nil
}

func (m *MockVectorDB) IndexExists(ctx context.Context, indexName string) (bool, error) {
	if m.OnIndexExists != nil {
		return m.OnIndexExists(ctx, indexName)
	}
	return true, nil
}

func (m *MockVectorDB) DropIndex(ctx context.Context, indexName string) error {
	if m.OnDropIndex != nil {
		return m.OnDropIndex(ctx, indexName)
	}
	return nil
}

func (m *MockVectorDB) UpsertChunks(ctx context.Context, indexName string, doc docModel.Document, chunks []docModel.Chunk) error {
	if m.OnUpsertChunks != nil {
		return m.OnUpsertChunks(ctx, indexName, doc, chunks)
	}
	return nil
}

func (m *MockVectorDB) SearchByVector(ctx context.Context, indexName string, vector []float32, candidateCount int) ([]docModel.ScoredChunk, error) {
	if m.OnSearchByVector != nil {
		return m.OnSearchByVector(ctx, indexName, vector, candidateCount)
	}
	return []docModel.ScoredChunk{}, nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return make([]float32, config.EmbeddingDimension), nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, texts)
	}
	// Return dummy vectors matching batch size
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = make([]float32, config.EmbeddingDimension)
	}
	return vectors, nil
}

func scoredChunk(ownerId string, docId string, content string, score float32) docModel.ScoredChunk {
	return docModel.ScoredChunk{
		Chunk:      docModel.Chunk{Content: content},
		Score:      score,
		DocumentId: docId,
		OwnerId:    ownerId,
	}
}
