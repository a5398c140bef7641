package vectorindex

import (
	"context"
	"fmt"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/apperrors"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/internal/rag/vectorDB"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

// Index manages the similarity index over stored chunk embeddings and runs
// owner-scoped nearest-neighbor queries against it.
type Index struct {
	db         vectorDB.DataProcessor
	name       string
	dimension  int
	oversample int
	logger     *logger_i.Logger
}

func New(db vectorDB.DataProcessor) *Index {
	return &Index{
		db:         db,
		name:       config.VectorIndexName,
		dimension:  config.EmbeddingDimension,
		oversample: config.CandidateMultiplier,
		logger:     logger_i.NewLogger("VectorIndex"),
	}
}

// EnsureIndex is idempotent: it creates the index only when absent.
func (ix *Index) EnsureIndex(ctx context.Context) error {
	exists, err := ix.db.IndexExists(ctx, ix.name)
	if err != nil {
		return fmt.Errorf("%w: checking index: %v", apperrors.ErrVectorSearch, err)
	}
	if exists {
		ix.logger.Debug("Index already exists", "index", ix.name)
		return nil
	}

	if err := ix.db.CreateIndex(ctx, ix.name, ix.dimension); err != nil {
		return fmt.Errorf("%w: creating index: %v", apperrors.ErrVectorSearch, err)
	}
	ix.logger.Info("Created vector index", "index", ix.name, "dimension", ix.dimension)
	return nil
}

func (ix *Index) DropIndex(ctx context.Context) error {
	if err := ix.db.DropIndex(ctx, ix.name); err != nil {
		return fmt.Errorf("%w: dropping index: %v", apperrors.ErrVectorSearch, err)
	}
	return nil
}

// Upsert stores a document's embedded chunks under the index.
func (ix *Index) Upsert(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error {
	if err := ix.db.UpsertChunks(ctx, ix.name, doc, chunks); err != nil {
		return fmt.Errorf("%w: upserting chunks: %v", apperrors.ErrVectorSearch, err)
	}
	return nil
}

// Query returns up to limit chunks most similar to queryVector, in
// descending score order, restricted to documents of the given owner. The
// backend is asked for oversampled candidates because the owner filter runs
// after the similarity ranking stage; a cross-owner result here would be a
// correctness violation, so the filter is enforced regardless of what the
// backend returns.
func (ix *Index) Query(ctx context.Context, queryVector []float32, ownerId string, limit int) ([]docModel.ScoredChunk, error) {
	if len(queryVector) != ix.dimension {
		return nil, fmt.Errorf("%w: query vector has dimension %d, index expects %d", apperrors.ErrDimensionMismatch, len(queryVector), ix.dimension)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", apperrors.ErrInvalidConfiguration, limit)
	}

	exists, err := ix.db.IndexExists(ctx, ix.name)
	if err != nil {
		return nil, fmt.Errorf("%w: checking index: %v", apperrors.ErrVectorSearch, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrIndexNotFound, ix.name)
	}

	candidates, err := ix.db.SearchByVector(ctx, ix.name, queryVector, limit*ix.oversample)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrVectorSearch, err)
	}

	results := make([]docModel.ScoredChunk, 0, limit)
	for _, c := range candidates {
		if c.OwnerId != ownerId {
			continue
		}
		results = append(results, c)
		if len(results) == limit {
			break
		}
	}

	ix.logger.Debug("Vector query", "candidates", len(candidates), "matches", len(results), "owner", ownerId)
	return results, nil
}
