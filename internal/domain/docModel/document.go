package docModel

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Chunk is one contiguous slice of a document's text. Start/End are the
// offsets of the slicing window, so End-Start == len(Content).
type Chunk struct {
	Content   string    `json:"content"`
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding,omitempty"`
	Start     int       `json:"start"`
	End       int       `json:"end"`
}

type Metadata struct {
	TotalChunks   int       `json:"total_chunks"`
	WordCount     int       `json:"word_count"`
	LastProcessed time.Time `json:"last_processed"`
}

// Document is one uploaded file and its derived artifacts. The ingestion
// pipeline owns it exclusively for the duration of one ingest call;
// it becomes immutable once a terminal status is reached.
type Document struct {
	Id           string  `json:"id"`
	OwnerId      string  `json:"owner_id"`
	OriginalName string  `json:"original_name"`
	MimeType     string  `json:"mime_type"`
	Content      string  `json:"content,omitempty"`
	Chunks       []Chunk `json:"chunks,omitempty"`

	//ProcessingStatus and VectorizationStatus move together under normal
	//flow but stay independent so vectorization can someday rerun without
	//re-extraction.
	ProcessingStatus    Status `json:"processing_status"`
	VectorizationStatus Status `json:"vectorization_status"`

	Error       string    `json:"error,omitempty"`
	Metadata    Metadata  `json:"metadata"`
	CreatedTime time.Time `json:"created_time"`
}

// ScoredChunk is one similarity-search candidate: the chunk, its cosine
// score and the document it belongs to.
type ScoredChunk struct {
	Chunk      Chunk   `json:"chunk"`
	Score      float32 `json:"score"`
	DocumentId string  `json:"document_id"`
	OwnerId    string  `json:"owner_id"`
}

type DocumentStore interface {
	SaveDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, id string) (Document, bool)
	DeleteDocument(ctx context.Context, id string)
}
