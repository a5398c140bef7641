package handlers

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/internal/job"
	"github.com/cerebroai/docapi/internal/metrics"
	"github.com/cerebroai/docapi/internal/rag"
	"github.com/cerebroai/docapi/internal/rag/ingest"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

var (
	handlerInstance *DocumentHandler //private singleton
	once            sync.Once
	logDH           *logger_i.Logger
)

type DocumentHandler struct {
	service  *job.Service
	pipeline *ingest.Pipeline
	docs     docModel.DocumentStore
	query    rag.Service
}

func InitDocumentHandler(jobService *job.Service, pipeline *ingest.Pipeline, docs docModel.DocumentStore, queryService rag.Service) {
	once.Do(func() {
		handlerInstance = &DocumentHandler{
			service:  jobService,
			pipeline: pipeline,
			docs:     docs,
			query:    queryService,
		}

		logDH = logger_i.NewLogger("DocumentHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logDH.Info("Starting document handler")
	})
}

// CreateDocumentRecord persists the pending document so the status endpoint
// can observe it before the worker picks the task up.
func CreateDocumentRecord(ctx context.Context, ownerId string, mimeType string, originalName string) (docModel.Document, error) {
	return handlerInstance.pipeline.CreateDocument(ctx, ownerId, mimeType, originalName)
}

func EnqueueIngestion(task job.Task) {
	log := logDH.With("traceId", task.TraceId, "documentId", task.DocumentId)
	log.Info("Queueing ingestion task")
	handlerInstance.pushToTaskChannel(task, log)
}

func GetDocumentStatus(id string, traceId string) (result docModel.Document, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.docs.GetDocument(ctxC, id)
	}
	return result, false
}

func AnswerQuery(ctx context.Context, queryText string, ownerId string, conversationId string) (rag.QueryAnswer, error) {
	return handlerInstance.query.Answer(ctx, queryText, ownerId, conversationId)
}

func GetConversationHistory(ctx context.Context, ownerId string) ([]string, error) {
	return handlerInstance.query.History(ctx, ownerId)
}

// private methods
func (h *DocumentHandler) pushToTaskChannel(task job.Task, log *logger_i.Logger) {

	//metrics
	metrics.IncrementDocumentsInQueue()

	h.service.TaskChannel <- task //blocking send to prevent the system from being overwhelmed
	log.Info("Queued ingestion task")

	//ingestion is batch heavy with external embedding calls so every queued
	//document gets a dispatcher signal; the dispatcher caps the pool at
	//MaxWorkerCount and idle workers retire on their own
	atomic.AddInt64(&h.service.RequestCount, 1)
	metrics.StartDispatcherSignalCount() //metrics
	h.service.DispatcherChannel <- true
}
