package memoryDB

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/cerebroai/docapi/internal/domain/docModel"
)

type entry struct {
	chunk      docModel.Chunk
	documentId string
	ownerId    string
}

// Storage is a brute-force cosine-similarity store. It backs the POC
// deployment and the test suite; the production slot is Qdrant.
type Storage struct {
	mu      sync.RWMutex
	indexes map[string]*index
}

type index struct {
	dimension int
	entries   []entry
}

func NewStorage() *Storage {
	return &Storage{indexes: make(map[string]*index)}
}

func (s *Storage) CreateIndex(ctx context.Context, indexName string, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.indexes[indexName]; exists {
		return nil
	}
	s.indexes[indexName] = &index{dimension: dimension}
	return nil
}

func (s *Storage) IndexExists(ctx context.Context, indexName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.indexes[indexName]
	return exists, nil
}

func (s *Storage) DropIndex(ctx context.Context, indexName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.indexes, indexName)
	return nil
}

func (s *Storage) UpsertChunks(ctx context.Context, indexName string, doc docModel.Document, chunks []docModel.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ix, exists := s.indexes[indexName]
	if !exists {
		return errors.New("index does not exist")
	}
	for _, c := range chunks {
		if len(c.Embedding) != ix.dimension {
			return errors.New("vector dimension mismatch")
		}
		ix.entries = append(ix.entries, entry{chunk: c, documentId: doc.Id, ownerId: doc.OwnerId})
	}
	return nil
}

func (s *Storage) SearchByVector(ctx context.Context, indexName string, vector []float32, candidateCount int) ([]docModel.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ix, exists := s.indexes[indexName]
	if !exists {
		return nil, errors.New("index does not exist")
	}
	if len(vector) != ix.dimension {
		return nil, errors.New("vector dimension mismatch")
	}

	results := make([]docModel.ScoredChunk, 0, len(ix.entries))
	for _, e := range ix.entries {
		results = append(results, docModel.ScoredChunk{
			Chunk:      e.chunk,
			Score:      cosineSimilarity(vector, e.chunk.Embedding),
			DocumentId: e.documentId,
			OwnerId:    e.ownerId,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if candidateCount > 0 && candidateCount < len(results) {
		results = results[:candidateCount]
	}
	return results, nil
}

func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
