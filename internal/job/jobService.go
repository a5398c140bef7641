package job

import (
	"time"

	"github.com/cerebroai/docapi/internal/rag/ingest"
)

// Task is one queued document ingestion. The upload handler has already
// persisted the document record in pending/pending; the worker picks the
// task up and drives it to a terminal state.
type Task struct {
	DocumentId  string
	OwnerId     string
	FileName    string
	MimeType    string
	FilePath    string
	TraceId     string
	Options     ingest.Options
	CreatedTime time.Time
}

type Service struct {
	TaskChannel       chan Task
	RequestCount      int64
	DispatcherChannel chan bool
}

type ServiceConfig struct {
	TaskChannel       chan Task
	RequestCount      int64
	DispatcherChannel chan bool
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		TaskChannel:       cfg.TaskChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
	}
}
