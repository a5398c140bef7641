package embedding

import "context"

// Embedder converts text into fixed-dimension vectors. BatchEmbedding
// returns one vector per input text, in input order.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}
