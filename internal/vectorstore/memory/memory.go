// ABOUTME: In-memory vector store with brute-force cosine search
// ABOUTME: Used by tests and as a no-persistence backend
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/harper/lorekeeper/internal/models"
	"github.com/harper/lorekeeper/internal/vectorstore"
)

// Store keeps chunks and vectors in process memory. Safe for concurrent
// readers and writers; contents are lost when the process exits.
type Store struct {
	mu      sync.RWMutex
	chunks  map[string]models.Chunk
	vectors map[string][]float64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		chunks:  make(map[string]models.Chunk),
		vectors: make(map[string][]float64),
	}
}

// Count returns the number of stored chunks.
func (s *Store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Upsert stores chunks keyed by id; re-upserting an id replaces it.
func (s *Store) Upsert(chunks []models.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range chunks {
		s.chunks[c.ID] = c
		s.vectors[c.ID] = vectors[i]
	}
	return nil
}

// Query ranks all stored chunks by cosine similarity, descending.
func (s *Store) Query(vector []float64, k int) ([]models.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.ScoredChunk, 0, len(s.chunks))
	for id, c := range s.chunks {
		results = append(results, models.ScoredChunk{
			Chunk: c,
			Score: vectorstore.Cosine(vector, s.vectors[id]),
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// FilterByPage returns all chunks for one document page.
func (s *Store) FilterByPage(source string, page int) ([]models.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Chunk
	for _, c := range s.chunks {
		if c.SourceDocument == source && c.Page == page {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
