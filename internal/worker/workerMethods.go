package worker

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/internal/job"
	"github.com/cerebroai/docapi/internal/metrics"
)

func executeTask(task job.Task) {
	start := time.Now()
	status := string(docModel.StatusCompleted)
	defer func() {
		metrics.CaptureIngestionMetrics(status, time.Since(start))
	}()

	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, task.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IngestTimeout)
	defer cancel()

	log := logger.With("traceId", task.TraceId, "documentId", task.DocumentId)
	log.Debug("Processing ingestion task")

	doc := docModel.Document{
		Id:                  task.DocumentId,
		OwnerId:             task.OwnerId,
		OriginalName:        task.FileName,
		MimeType:            task.MimeType,
		ProcessingStatus:    docModel.StatusPending,
		VectorizationStatus: docModel.StatusPending,
		CreatedTime:         task.CreatedTime,
	}

	data, err := os.ReadFile(task.FilePath)
	if err != nil {
		log.Error("Could not read uploaded file", "error", err)
		status = string(docModel.StatusFailed)
		_, _ = _pipeline.Fail(ctx, doc, err)
		return
	}
	if err := os.Remove(task.FilePath); err != nil {
		log.Error("Error removing temp file", "error", err)
	}

	if _, err := _pipeline.Run(ctx, doc, data, task.Options); err != nil {
		status = string(docModel.StatusFailed)
		log.Error("Ingestion task failed", "error", err)
		return
	}
	log.Info("Ingestion task complete")
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()
}
