package apperrors

import (
	"context"
	"errors"
	"net/http"
)

// Error kinds surfaced by the ingestion and retrieval core. Callers classify
// with errors.Is; the concrete cause stays attached through %w wrapping.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrUnsupportedMimeType  = errors.New("unsupported mime type")
	ErrExtraction           = errors.New("extraction failed")
	ErrEmbeddingProvider    = errors.New("embedding provider failure")
	ErrEmbeddingGeneration  = errors.New("embedding generation failed")
	ErrDimensionMismatch    = errors.New("vector dimension mismatch")
	ErrIndexNotFound        = errors.New("vector index not found")
	ErrVectorSearch         = errors.New("vector search failed")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrCancelled            = errors.New("operation cancelled")
)

// FromContext converts a context error into the Cancelled kind.
func FromContext(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrCancelled
	}
	return err
}

// HTTPStatus maps an error kind to the status code the transport should emit.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidConfiguration),
		errors.Is(err, ErrUnsupportedMimeType),
		errors.Is(err, ErrDimensionMismatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCancelled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the embedding call site may retry the failure.
// Configuration and precondition errors never are.
func Retryable(err error) bool {
	if errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrUnsupportedMimeType) ||
		errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrCancelled) {
		return false
	}
	return true
}
