// ABOUTME: VectorStore interface for embedding persistence and similarity search
// ABOUTME: Backends: sqlite (durable), qdrant (remote), memory (tests/ephemeral)
package vectorstore

import (
	"math"

	"github.com/harper/lorekeeper/internal/models"
)

// Store persists chunk embeddings and answers similarity queries. The
// rules index treats it as an external collaborator: upsert and query by
// vector, plus a metadata-equality filter for provenance inspection.
type Store interface {
	// Count reports how many chunks the store holds. The index uses it as
	// the build-once guard.
	Count() (int, error)

	// Upsert stores chunks with their embedding vectors, keyed by chunk id.
	Upsert(chunks []models.Chunk, vectors [][]float64) error

	// Query returns up to k chunks ranked by similarity, descending.
	Query(vector []float64, k int) ([]models.ScoredChunk, error)

	// FilterByPage returns every chunk stored for one document page.
	FilterByPage(source string, page int) ([]models.Chunk, error)
}

// Cosine computes cosine similarity between two vectors. Mismatched or
// zero-norm vectors score 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
