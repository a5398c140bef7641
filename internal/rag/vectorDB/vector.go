package vectorDB

import (
	"context"

	"github.com/cerebroai/docapi/internal/domain/docModel"
)

// DataProcessor is the similarity-search capability of the storage engine.
// SearchByVector ranks candidates by cosine similarity across all owners;
// owner scoping happens above, after the ranking stage.
type DataProcessor interface {
	CreateIndex(ctx context.Context, indexName string, dimension int) error
	IndexExists(ctx context.Context, indexName string) (bool, error)
	DropIndex(ctx context.Context, indexName string) error

	UpsertChunks(ctx context.Context, indexName string, doc docModel.Document, chunks []docModel.Chunk) error
	SearchByVector(ctx context.Context, indexName string, vector []float32, candidateCount int) ([]docModel.ScoredChunk, error)
}
