package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/apperrors"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/internal/metrics"
	"github.com/cerebroai/docapi/internal/rag/chunker"
	"github.com/cerebroai/docapi/internal/rag/embedding"
	"github.com/cerebroai/docapi/internal/rag/vectorindex"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

// Options tunes chunking for one ingestion. A nil field means the default
// for that field; an explicit zero overlap is a valid override.
type Options struct {
	ChunkSize    *int
	ChunkOverlap *int
}

// resolve fills each unset field with its default independently, so
// overriding one field never disturbs the other.
func (o Options) resolve() (size int, overlap int) {
	size, overlap = config.DefaultChunkSize, config.DefaultChunkOverlap
	if o.ChunkSize != nil {
		size = *o.ChunkSize
	}
	if o.ChunkOverlap != nil {
		overlap = *o.ChunkOverlap
	}
	return size, overlap
}

// Pipeline turns extracted text into an embedded, searchable document.
// Every step persists the document so status is observable mid-flight.
type Pipeline struct {
	docs       docModel.DocumentStore
	embeddings *embedding.Service
	index      *vectorindex.Index
	newId      func() string
	logger     *logger_i.Logger
}

func NewPipeline(docs docModel.DocumentStore, embeddings *embedding.Service, index *vectorindex.Index, newId func() string) *Pipeline {
	return &Pipeline{
		docs:       docs,
		embeddings: embeddings,
		index:      index,
		newId:      newId,
		logger:     logger_i.NewLogger("Ingestion Pipeline"),
	}
}

// CreateDocument mints and persists a document record in pending/pending so
// the status endpoint can see it before processing starts.
func (p *Pipeline) CreateDocument(ctx context.Context, ownerId string, mimeType string, originalName string) (docModel.Document, error) {
	doc := docModel.Document{
		Id:                  p.newId(),
		OwnerId:             ownerId,
		OriginalName:        originalName,
		MimeType:            mimeType,
		ProcessingStatus:    docModel.StatusPending,
		VectorizationStatus: docModel.StatusPending,
		CreatedTime:         time.Now(),
	}
	if err := p.docs.SaveDocument(ctx, doc); err != nil {
		return docModel.Document{}, err
	}
	return doc, nil
}

// Ingest runs the full pipeline over already-extracted text and returns the
// document in a terminal state. On failure the document is persisted as
// failed/failed with the error recorded, and the error is returned.
func (p *Pipeline) Ingest(ctx context.Context, extractedText string, ownerId string, mimeType string, originalName string, opts Options) (docModel.Document, error) {
	doc, err := p.CreateDocument(ctx, ownerId, mimeType, originalName)
	if err != nil {
		return docModel.Document{}, err
	}
	return p.process(ctx, doc, extractedText, opts)
}

// Run extracts text from raw bytes and processes the given pre-created
// document. Extraction failures still land the document in a terminal
// failed state so the status endpoint reflects them.
func (p *Pipeline) Run(ctx context.Context, doc docModel.Document, data []byte, opts Options) (docModel.Document, error) {
	text, err := ExtractText(data, doc.MimeType)
	if err != nil {
		return p.fail(ctx, doc, err)
	}
	return p.process(ctx, doc, text, opts)
}

func (p *Pipeline) process(ctx context.Context, doc docModel.Document, extractedText string, opts Options) (docModel.Document, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	log := p.logger.With("documentId", doc.Id, "owner", doc.OwnerId)
	chunkSize, chunkOverlap := opts.resolve()

	doc.Content = extractedText
	doc.ProcessingStatus = docModel.StatusProcessing
	doc.VectorizationStatus = docModel.StatusPending
	if err := p.docs.SaveDocument(ctx, doc); err != nil {
		return p.fail(ctx, doc, err)
	}

	log.Debug("Splitting document", "chars", len(extractedText), "chunkSize", chunkSize, "overlap", chunkOverlap)
	chunks, err := chunker.Split(extractedText, chunkSize, chunkOverlap)
	if err != nil {
		return p.fail(ctx, doc, err)
	}

	embedded, err := p.embeddings.GenerateEmbeddings(ctx, chunks)
	if err != nil {
		return p.fail(ctx, doc, err)
	}
	doc.Chunks = embedded

	if err := p.index.EnsureIndex(ctx); err != nil {
		return p.fail(ctx, doc, err)
	}
	if err := p.index.Upsert(ctx, doc, embedded); err != nil {
		return p.fail(ctx, doc, err)
	}

	doc.Metadata = docModel.Metadata{
		TotalChunks:   len(embedded),
		WordCount:     len(strings.Fields(extractedText)),
		LastProcessed: time.Now(),
	}
	doc.ProcessingStatus = docModel.StatusCompleted
	doc.VectorizationStatus = docModel.StatusCompleted
	if err := p.docs.SaveDocument(ctx, doc); err != nil {
		return p.fail(ctx, doc, err)
	}

	log.Info("Document ingested", "chunks", len(embedded), "words", doc.Metadata.WordCount)
	return doc, nil
}

// Fail marks a document as terminally failed without running any pipeline
// step. Used when the raw upload can no longer be read back.
func (p *Pipeline) Fail(ctx context.Context, doc docModel.Document, cause error) (docModel.Document, error) {
	return p.fail(ctx, doc, cause)
}

// fail records the terminal failed state and re-raises the original error:
// callers get both a persisted audit trail and an immediate failure.
func (p *Pipeline) fail(ctx context.Context, doc docModel.Document, cause error) (docModel.Document, error) {
	cause = apperrors.FromContext(cause)
	p.logger.Error("Ingestion failed", "documentId", doc.Id, "error", cause)

	doc.ProcessingStatus = docModel.StatusFailed
	doc.VectorizationStatus = docModel.StatusFailed
	doc.Error = cause.Error()

	// best effort: the persist of the failed state must not mask the cause
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.docs.SaveDocument(saveCtx, doc); err != nil {
		p.logger.Error("Could not persist failed state", "documentId", doc.Id, "error", err)
	}

	return doc, cause
}
