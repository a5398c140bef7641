// @title           Document Ingestion & Query API
// @version         1.0
// @description     This API ingests documents asynchronously, vectorizes them and answers owner-scoped queries with citations
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/cerebroai/docapi/internal/adapter/utils"
	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/data/store"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/internal/handlers"
	"github.com/cerebroai/docapi/internal/job"
	"github.com/cerebroai/docapi/internal/mcpserver"
	"github.com/cerebroai/docapi/internal/rag"
	"github.com/cerebroai/docapi/internal/rag/embedding"
	"github.com/cerebroai/docapi/internal/rag/embedding/googleEmbedding"
	"github.com/cerebroai/docapi/internal/rag/embedding/mockProvider"
	"github.com/cerebroai/docapi/internal/rag/embedding/openaiEmbedding"
	"github.com/cerebroai/docapi/internal/rag/ingest"
	"github.com/cerebroai/docapi/internal/rag/vectorDB"
	"github.com/cerebroai/docapi/internal/rag/vectorDB/memoryDB"
	"github.com/cerebroai/docapi/internal/rag/vectorDB/qdrantDB"
	"github.com/cerebroai/docapi/internal/rag/vectorindex"
	"github.com/cerebroai/docapi/internal/server"
	"github.com/cerebroai/docapi/internal/worker"
	"github.com/cerebroai/docapi/pkg/logger_i"
)

var (
	listenAddr        string
	providerName      string
	mcpMode           bool
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.StringVar(&providerName, "embedding-provider", config.EmbeddingProviderName, "embedding provider: mock | google | openai")
	flag.BoolVar(&mcpMode, "mcp", false, "serve MCP over stdio instead of HTTP")
	flag.Parse()

	//init buffered task channel
	taskChannel := make(chan job.Task, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//document store - redis with in-memory fallback
	var docStore docModel.DocumentStore
	if redisStore := store.GetRedisDocumentStore(serviceContext); redisStore != nil {
		docStore = redisStore
	} else {
		logger.Error("Redis document store is offline, falling back to in-memory")
		docStore = store.InitInMemoryDocumentStore()
	}

	//vector store - qdrant with in-memory fallback
	var vectorStore vectorDB.DataProcessor
	if qdrantClient := qdrantDB.GetQuadrantClient(serviceContext); qdrantClient != nil {
		vectorStore = qdrantClient
	} else {
		logger.Error("Qdrant is offline, falling back to in-memory vector store")
		vectorStore = memoryDB.NewStorage()
	}

	provider := selectProvider(serviceContext, logger)
	if provider == nil {
		logger.Error("Embedding provider failed to initialize. Shutting down.")
		return
	}

	embeddingService := embedding.NewService(provider)
	index := vectorindex.New(vectorStore)
	pipeline := ingest.NewPipeline(docStore, embeddingService, index, utils.GetNewUUID)
	queryService := rag.NewService(embeddingService, index, utils.GetNewUUID)

	if mcpMode {
		if err := mcpserver.NewServer(queryService).Run(serviceContext); err != nil {
			logger.Error("MCP server stopped", "error", err)
		}
		return
	}

	//init job service
	serviceConfig := job.ServiceConfig{
		TaskChannel:       taskChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	handlers.InitDocumentHandler(service, pipeline, docStore, queryService)

	//init worker pool
	worker.InitServices(service, pipeline)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func selectProvider(ctx context.Context, logger *logger_i.Logger) embedding.Embedder {
	switch providerName {
	case "google":
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)
	case "openai":
		return openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey)
	case "mock":
		logger.Warn("Using the mock embedding provider, vectors are random")
		return mockProvider.New()
	default:
		logger.Error("Unknown embedding provider", "name", providerName)
		return nil
	}
}
