package adapter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cerebroai/docapi/internal/api"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/internal/rag"
)

func ToUploadResponse(id string) api.UploadResponse {
	return api.UploadResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("documents/%s/status", id),
	}
}

func ToStatusResponse(doc docModel.Document) api.DocumentStatusResponse {
	var errorPtr *api.OutgoingError
	if doc.Error != "" {
		errorPtr = &api.OutgoingError{
			Code:    http.StatusUnprocessableEntity,
			Message: doc.Error,
			Retry:   false,
		}
	}

	var metaPtr *api.DocumentMetadata
	if doc.Metadata.TotalChunks > 0 || !doc.Metadata.LastProcessed.IsZero() {
		metaPtr = &api.DocumentMetadata{
			TotalChunks:   doc.Metadata.TotalChunks,
			WordCount:     doc.Metadata.WordCount,
			LastProcessed: doc.Metadata.LastProcessed,
		}
	}

	return api.DocumentStatusResponse{
		Id:                  doc.Id,
		Name:                doc.OriginalName,
		ProcessingStatus:    string(doc.ProcessingStatus),
		VectorizationStatus: string(doc.VectorizationStatus),
		Metadata:            metaPtr,
		Error:               errorPtr,
		CreatedTime:         doc.CreatedTime,
	}
}

// ToDetailsResponse exposes the full record except the extracted text and
// the chunk embeddings, which have no business crossing the API boundary.
func ToDetailsResponse(doc docModel.Document) api.DocumentDetailsResponse {
	status := ToStatusResponse(doc)
	return api.DocumentDetailsResponse{
		Id:                  status.Id,
		OwnerId:             doc.OwnerId,
		Name:                status.Name,
		MimeType:            doc.MimeType,
		ProcessingStatus:    status.ProcessingStatus,
		VectorizationStatus: status.VectorizationStatus,
		ContentLength:       len(doc.Content),
		Metadata:            status.Metadata,
		Error:               status.Error,
		CreatedTime:         status.CreatedTime,
	}
}

func ToHistoryResponse(ownerId string, messages []string) api.ChatHistoryResponse {
	if messages == nil {
		messages = []string{}
	}
	return api.ChatHistoryResponse{
		OwnerId:  ownerId,
		Messages: messages,
	}
}

func ToQueryResponse(answer rag.QueryAnswer) api.QueryResponse {
	citations := make([]api.Citation, 0, len(answer.Citations))
	for _, c := range answer.Citations {
		citations = append(citations, api.Citation{
			Content:    c.Content,
			DocumentId: c.DocumentId,
			Score:      c.Score,
		})
	}
	return api.QueryResponse{
		Answer:         answer.Answer,
		Citations:      citations,
		ConversationId: answer.ConversationId,
	}
}

func BadRequest(id string, error string, code int) api.DocumentStatusResponse {
	return api.DocumentStatusResponse{
		Id:                  id,
		ProcessingStatus:    string(api.StatusError),
		VectorizationStatus: string(api.StatusError),
		CreatedTime:         time.Time{},
		Error: &api.OutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
