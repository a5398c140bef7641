package mockProvider

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/apperrors"
	"github.com/cerebroai/docapi/internal/rag/embedding"
)

// Provider produces vectors of uniform values in [-1, 1). The values carry
// no semantic meaning; only dimension and count are stable, so tests must
// never assert on vector content.
type Provider struct {
	dimension int
}

func New() embedding.Embedder {
	return &Provider{dimension: config.EmbeddingDimension}
}

func NewWithDimension(dimension int) embedding.Embedder {
	return &Provider{dimension: dimension}
}

func (p *Provider) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCancelled, err)
	}
	vector := make([]float32, p.dimension)
	for i := range vector {
		vector[i] = float32(rand.Float64()*2 - 1)
	}
	return vector, nil
}

func (p *Provider) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := p.GetEmbedding(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}
