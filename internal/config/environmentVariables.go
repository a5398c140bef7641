package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//embeddings
	EmbeddingDimension   = 384
	EmbeddingBatchSize   = 5
	InterBatchDelay      = 100 * time.Millisecond
	EmbeddingMaxRetries  = 3
	EmbeddingRetryDelay  = 500 * time.Millisecond
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	//embedding provider selection: "mock" | "google" | "openai"
	EmbeddingProviderName = "mock"

	//chunking
	DefaultChunkSize    = 1000 //characters
	DefaultChunkOverlap = 200  //characters

	//retrieval
	SearchTopK          = 5
	CandidateMultiplier = 10 //oversample before the owner filter
	VectorIndexName     = "document-chunks"

	//uploads - rejected at the boundary before the core is invoked
	MaxUploadSize int64 = 5 << 20 //5 MiB

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//ingestion job buffer limit
	BufferLimit = 100

	IngestTimeout = 5 * time.Minute
	QueryTimeout  = 30 * time.Second

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//vectorDB
	QdrantHost             = ""
	QdrantPort             = 6333 //http
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisDocumentStore = 0

	RedisDocumentStoreTTL = 0 * time.Second //documents do not expire
)

// provider credentials come from the environment, never from source
var (
	GoogleEmbeddingAPIKey = os.Getenv("GOOGLE_API_KEY")
	OpenAIAPIKey          = os.Getenv("OPENAI_API_KEY")
)

// AllowedMimeTypes is the upload allow-list, enforced before ingestion starts.
var AllowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}
