package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/cerebroai/docapi/internal/config"
	"github.com/cerebroai/docapi/internal/domain/docModel"
	"github.com/cerebroai/docapi/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var quadrantInstance *qdrant.Client
var once sync.Once

type ClientHolder struct {
	QObj *qdrant.Client
}

func GetQuadrantClient(ctx context.Context) *ClientHolder {

	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient()
		if res != nil {
			quadrantInstance = res
			go closeQdrant(ctx, quadrantInstance)
		}
	})

	if quadrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj: quadrantInstance,
	}
}

func newClient() *qdrant.Client {

	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) CreateIndex(ctx context.Context, indexName string, dimension int) error {
	if indexName == "" {
		return errors.New("empty index name")
	}

	exists, err := db.IndexExists(ctx, indexName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return db.QObj.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: indexName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (db *ClientHolder) IndexExists(ctx context.Context, indexName string) (bool, error) {
	return db.QObj.CollectionExists(ctx, indexName)
}

func (db *ClientHolder) DropIndex(ctx context.Context, indexName string) error {
	return db.QObj.DeleteCollection(ctx, indexName)
}

func (db *ClientHolder) UpsertChunks(ctx context.Context, indexName string, doc docModel.Document, chunks []docModel.Chunk) error {
	qdrantPoints := make([]*qdrant.PointStruct, len(chunks))

	for i, chunk := range chunks {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(chunk.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":       chunk.Content,
				"chunk_index":   chunk.Index,
				"chunk_start":   chunk.Start,
				"chunk_end":     chunk.End,
				"source_doc_id": doc.Id,
				"owner_id":      doc.OwnerId,
				"doc_name":      doc.OriginalName,
			}),
		}
	}

	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: indexName,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *ClientHolder) SearchByVector(ctx context.Context, indexName string, vector []float32, candidateCount int) ([]docModel.ScoredChunk, error) {
	loggr := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: indexName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(candidateCount)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	candidates := make([]docModel.ScoredChunk, 0, len(result))
	for _, hit := range result {
		candidates = append(candidates, docModel.ScoredChunk{
			Chunk: docModel.Chunk{
				Content: hit.Payload["content"].GetStringValue(),
				Index:   int(hit.Payload["chunk_index"].GetIntegerValue()),
				Start:   int(hit.Payload["chunk_start"].GetIntegerValue()),
				End:     int(hit.Payload["chunk_end"].GetIntegerValue()),
			},
			Score:      hit.Score,
			DocumentId: hit.Payload["source_doc_id"].GetStringValue(),
			OwnerId:    hit.Payload["owner_id"].GetStringValue(),
		})
	}

	loggr.Debug("Qdrant candidates", "count", len(candidates))
	return candidates, nil
}
