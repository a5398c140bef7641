package embedding

import (
	"fmt"
	"time"

	"context"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/apperrors"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

// Service drives batched embedding generation over chunk sequences.
// Batches run sequentially with a delay in between so external provider
// rate limits are respected.
type Service struct {
	provider   Embedder
	batchSize  int
	delay      time.Duration
	maxRetries int
	retryDelay time.Duration
	logger     *logger_i.Logger
}

func NewService(provider Embedder) *Service {
	return &Service{
		provider:   provider,
		batchSize:  config.EmbeddingBatchSize,
		delay:      config.InterBatchDelay,
		maxRetries: config.EmbeddingMaxRetries,
		retryDelay: config.EmbeddingRetryDelay,
		logger:     logger_i.NewLogger("EmbeddingService"),
	}
}

// NewServiceWithOptions exists for tests and non-default deployments.
func NewServiceWithOptions(provider Embedder, batchSize int, delay time.Duration, maxRetries int, retryDelay time.Duration) *Service {
	return &Service{
		provider:   provider,
		batchSize:  batchSize,
		delay:      delay,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger_i.NewLogger("EmbeddingService"),
	}
}

// GenerateEmbeddings fills in the embedding of every chunk, preserving
// order and indices. If any batch fails the whole operation fails and the
// caller must treat the document as failed, never partially vectorized.
func (s *Service) GenerateEmbeddings(ctx context.Context, chunks []docModel.Chunk) ([]docModel.Chunk, error) {
	if s.batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", apperrors.ErrInvalidConfiguration, s.batchSize)
	}

	out := make([]docModel.Chunk, len(chunks))
	copy(out, chunks)

	for i := 0; i < len(out); i += s.batchSize {
		end := i + s.batchSize
		if end > len(out) {
			end = len(out)
		}
		batch := out[i:end]

		texts := make([]string, len(batch))
		for j, c := range batch {
			texts[j] = c.Content
		}

		vectors, err := s.callProvider(ctx, texts)
		if err != nil {
			s.logger.Error("Embedding batch failed", "offset", i, "error", err)
			return nil, fmt.Errorf("%w: batch at offset %d: %v", apperrors.ErrEmbeddingGeneration, i, err)
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("%w: provider returned %d vectors for %d texts", apperrors.ErrEmbeddingGeneration, len(vectors), len(texts))
		}
		for j, v := range vectors {
			if len(v) != config.EmbeddingDimension {
				return nil, fmt.Errorf("%w: vector %d has dimension %d, want %d", apperrors.ErrEmbeddingGeneration, i+j, len(v), config.EmbeddingDimension)
			}
		}

		for j := range batch {
			batch[j].Embedding = vectors[j]
		}

		//suspend between batches, except after the last one
		if end < len(out) {
			if err := s.pause(ctx, s.delay); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// GenerateEmbedding embeds a single query text.
func (s *Service) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vector, err := s.provider.GetEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEmbeddingProvider, err)
	}
	return vector, nil
}

// callProvider performs one batched call, retrying transient provider
// failures with a linear backoff. Precondition errors are never retried.
func (s *Service) callProvider(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Warn("Retrying embedding batch", "attempt", attempt, "error", lastErr)
			if err := s.pause(ctx, s.retryDelay*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}

		vectors, err := s.provider.BatchEmbedding(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err
		if !apperrors.Retryable(err) {
			break
		}
	}
	return nil, lastErr
}

// pause is a cooperative suspension point: the goroutine parks on the
// timer instead of spinning, and cancellation cuts the wait short.
func (s *Service) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", apperrors.ErrCancelled, ctx.Err())
	case <-timer.C:
		return nil
	}
}
