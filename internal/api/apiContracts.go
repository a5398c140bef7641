package api

import "time"

type ExternalStatus string

const (
	StatusError ExternalStatus = "Error"
)

type UploadResponse struct {
	Id        string `json:"id" example:"doc_8f2a1"`
	StatusURL string `json:"status_url" example:"documents/doc_8f2a1/status"`
}

type DocumentStatusResponse struct {
	Id                  string            `json:"id" example:"doc_8f2a1"`
	Name                string            `json:"name" example:"handbook.pdf"`
	ProcessingStatus    string            `json:"processing_status" example:"completed"`
	VectorizationStatus string            `json:"vectorization_status" example:"completed"`
	Metadata            *DocumentMetadata `json:"metadata,omitempty"`
	Error               *OutgoingError    `json:"error,omitempty"`
	CreatedTime         time.Time         `json:"created_time"`
}

type DocumentDetailsResponse struct {
	Id                  string            `json:"id" example:"doc_8f2a1"`
	OwnerId             string            `json:"owner_id" example:"user-42"`
	Name                string            `json:"name" example:"handbook.pdf"`
	MimeType            string            `json:"mime_type" example:"application/pdf"`
	ProcessingStatus    string            `json:"processing_status" example:"completed"`
	VectorizationStatus string            `json:"vectorization_status" example:"completed"`
	ContentLength       int               `json:"content_length" example:"48210"`
	Metadata            *DocumentMetadata `json:"metadata,omitempty"`
	Error               *OutgoingError    `json:"error,omitempty"`
	CreatedTime         time.Time         `json:"created_time"`
}

type ChatHistoryResponse struct {
	OwnerId  string   `json:"owner_id" example:"user-42"`
	Messages []string `json:"messages"`
}

type DocumentMetadata struct {
	TotalChunks   int       `json:"total_chunks" example:"12"`
	WordCount     int       `json:"word_count" example:"4810"`
	LastProcessed time.Time `json:"last_processed"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Document not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type QueryResponse struct {
	Answer         string     `json:"answer"`
	Citations      []Citation `json:"citations"`
	ConversationId string     `json:"conversation_id" example:"conv_550"`
}

type Citation struct {
	Content    string  `json:"content"`
	DocumentId string  `json:"document_id"`
	Score      float32 `json:"score"`
}

// requests---------------------

type QueryRequest struct {
	Query          string `json:"query" validate:"required"`
	OwnerId        string `json:"ownerId" validate:"required"`
	ConversationId string `json:"conversationId,omitempty"`
}
