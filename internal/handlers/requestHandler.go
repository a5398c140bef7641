package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cerebroai/docapi/internal/adapter"
	"github.com/cerebroai/docapi/internal/adapter/utils"
	"github.com/cerebroai/docapi/internal/api"
	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/apperrors"
	"github.com/cerebroai/docapi/internal/job"
	"github.com/cerebroai/docapi/internal/rag/ingest"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostDocumentHandler handles the uploading of PDF or DOCX documents for ingestion.
// @Summary      Upload a document for ingestion
// @Description  Receives a file via multipart/form-data, saves it to a temporary directory, and queues an ingestion task. The document is tracked from the moment of upload.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        owner_id       formData  string  true   "Owner of the document; retrieval is scoped to this owner"
// @Param        document       formData  file    true   "The PDF or DOCX file to upload"
// @Param        chunk_size     formData  int     false  "Chunk size in characters (default 1000)"
// @Param        chunk_overlap  formData  int     false  "Chunk overlap in characters (default 200)"
// @Success      202  {object}  api.UploadResponse "Accepted - returns document id and status URL"
// @Failure      400  {object}  api.DocumentStatusResponse "Bad Request - Missing fields, unsupported type or file too large"
// @Failure      500  {object}  api.DocumentStatusResponse "Internal Server Error - Storage or Write Error"
// @Router       /documents [post]
func PostDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()
		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		// ParseMultipartForm only bounds memory use, the reader caps the body
		r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
		if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		ownerId := r.FormValue("owner_id")
		if ownerId == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "owner_id is required")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		mimeType := fileMetadata.Header.Get("Content-Type")
		if !config.AllowedMimeTypes[mimeType] {
			logRH.Warn("Rejected upload", "mimeType", mimeType, "file", fileMetadata.Filename)
			WriteErrorResponse(w, http.StatusBadRequest, "", "Unsupported document type")
			return
		}

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Write error")
			return
		}

		doc, err := CreateDocumentRecord(r.Context(), ownerId, mimeType, fileMetadata.Filename)
		if err != nil {
			logRH.Error("Could not persist document record", "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
			return
		}

		task := job.Task{
			DocumentId:  doc.Id,
			OwnerId:     ownerId,
			FileName:    fileMetadata.Filename,
			MimeType:    mimeType,
			FilePath:    tempFilePath,
			TraceId:     r.Context().Value(config.TRACE_ID_KEY).(string),
			Options:     chunkOptions(r),
			CreatedTime: doc.CreatedTime,
		}
		EnqueueIngestion(task)

		writeJsonResponse(w, http.StatusAccepted, adapter.ToUploadResponse(doc.Id))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get document status
// @Description  Retrieves the processing and vectorization status of a document by its ID.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentStatusResponse "Current document status"
// @Failure      404  {object}  api.DocumentStatusResponse "Document not found"
// @Router       /documents/{id}/status [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, apperrors.HTTPStatus(apperrors.ErrDocumentNotFound), idString, apperrors.ErrDocumentNotFound.Error())
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(result))
	}
}

// GetDocumentHandler godoc
// @Summary      Get document details
// @Description  Retrieves the full document record including owner, type, metadata and any failure reason.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentDetailsResponse "Full document details"
// @Failure      404  {object}  api.DocumentStatusResponse "Document not found"
// @Router       /documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Document Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, apperrors.HTTPStatus(apperrors.ErrDocumentNotFound), idString, apperrors.ErrDocumentNotFound.Error())
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToDetailsResponse(result))
	}
}

// GetHistoryHandler godoc
// @Summary      Get conversation history
// @Description  Retrieves the conversation history for an owner. Conversations are not persisted yet so the list is empty.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        ownerId  path      string  true  "Owner ID"
// @Success      200      {object}  api.ChatHistoryResponse "Conversation history"
// @Failure      400      {object}  api.DocumentStatusResponse "Missing owner ID"
// @Router       /chat/history/{ownerId} [get]
func GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		ownerId := utils.GetChiURLParam(r, "ownerId")
		if ownerId == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "owner_id is required")
			return
		}

		messages, err := GetConversationHistory(r.Context(), ownerId)
		if err != nil {
			logRH.Error("History lookup failed", "error", err)
			WriteErrorResponse(w, apperrors.HTTPStatus(err), ownerId, err.Error())
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToHistoryResponse(ownerId, messages))
	}
}

// QueryHandler godoc
// @Summary      Query ingested documents
// @Description  Embeds the query, searches the owner's documents and returns an answer with citations. Runs synchronously.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest   true  "Query text, owner and optional conversation ID"
// @Success      200      {object}  api.QueryResponse  "Answer with citations"
// @Failure      400      {object}  api.DocumentStatusResponse "Invalid request data"
// @Failure      500      {object}  api.DocumentStatusResponse "Embedding or search failure"
// @Router       /query [post]
func QueryHandler(w http.ResponseWriter, request *http.Request) {
	if validateContext(request.Context()) {

		var requestData api.QueryRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Query handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.Query == "" || requestData.OwnerId == "" {
			logRH.Warn("Bad Query Request: ", "error:", err, "request data:", requestData)
			WriteErrorResponse(w, http.StatusBadRequest, requestData.ConversationId, "Bad Request")
			return
		}

		ctx, cancel := context.WithTimeout(request.Context(), config.QueryTimeout)
		defer cancel()

		answer, err := AnswerQuery(ctx, requestData.Query, requestData.OwnerId, requestData.ConversationId)
		if err != nil {
			logRH.Error("Query failed", "error", err)
			WriteErrorResponse(w, apperrors.HTTPStatus(err), requestData.ConversationId, err.Error())
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(answer))
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// chunkOptions reads the optional chunking overrides; an absent form field
// stays nil so the pipeline applies its own default for that field.
func chunkOptions(r *http.Request) ingest.Options {
	opts := ingest.Options{}
	if v := r.FormValue("chunk_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.ChunkSize = &n
		}
	}
	if v := r.FormValue("chunk_overlap"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.ChunkOverlap = &n
		}
	}
	return opts
}
