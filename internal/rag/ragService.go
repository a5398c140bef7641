package rag

import (
	"context"
	"time"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/internal/metrics"
	"github.com/cerebroai/docapi/internal/rag/embedding"
	"github.com/cerebroai/docapi/internal/rag/vectorindex"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

// Service is the query-side entry point. Handlers and the MCP server only
// see this contract, never the embedder or the index directly.
type Service interface {
	Answer(ctx context.Context, queryText string, ownerId string, conversationId string) (QueryAnswer, error)
	History(ctx context.Context, ownerId string) ([]string, error)
}

// Citation is one retrieved chunk with its score and source document.
type Citation struct {
	Content    string  `json:"content"`
	DocumentId string  `json:"document_id"`
	Score      float32 `json:"score"`
}

type QueryAnswer struct {
	Answer         string     `json:"answer"`
	Citations      []Citation `json:"citations"`
	ConversationId string     `json:"conversation_id"`
}

type service struct {
	embeddings *embedding.Service
	index      *vectorindex.Index
	topK       int
	newId      func() string
	logger     *logger_i.Logger
}

// NewService constructor
func NewService(embeddings *embedding.Service, index *vectorindex.Index, newId func() string) Service {
	return &service{
		embeddings: embeddings,
		index:      index,
		topK:       config.SearchTopK,
		newId:      newId,
		logger:     logger_i.NewLogger("Query Service"),
	}
}

// Answer embeds the query, retrieves the owner's top-K most similar chunks
// and assembles the response. The answer text is a placeholder built from
// the retrieved context; a language-generation step would consume the same
// citations without changing any other contract.
func (s *service) Answer(ctx context.Context, queryText string, ownerId string, conversationId string) (QueryAnswer, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "owner", ownerId)
	log.Debug("Processing query", "query", queryText)

	queryVector, err := s.executeEmbeddingStep(ctx, queryText)
	if err != nil {
		log.Error("Query embedding failed", "error", err)
		return QueryAnswer{}, err
	}

	matches, err := s.executeSearchStep(ctx, queryVector, ownerId)
	if err != nil {
		log.Error("Vector search failed", "error", err)
		return QueryAnswer{}, err
	}

	if conversationId == "" {
		conversationId = s.newId()
	}

	citations := make([]Citation, 0, len(matches))
	for _, m := range matches {
		citations = append(citations, Citation{
			Content:    m.Chunk.Content,
			DocumentId: m.DocumentId,
			Score:      m.Score,
		})
	}

	log.Debug("Query answered", "citations", len(citations))
	return QueryAnswer{
		Answer:         assembleAnswer(queryText, matches),
		Citations:      citations,
		ConversationId: conversationId,
	}, nil
}

// History is an always-empty stub: no conversation state is persisted.
func (s *service) History(ctx context.Context, ownerId string) ([]string, error) {
	return []string{}, nil
}

func (s *service) executeEmbeddingStep(ctx context.Context, queryText string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("query_embedding", time.Since(start)) }()

	return s.embeddings.GenerateEmbedding(ctx, queryText)
}

func (s *service) executeSearchStep(ctx context.Context, queryVector []float32, ownerId string) ([]docModel.ScoredChunk, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.index.Query(ctx, queryVector, ownerId, s.topK)
}
