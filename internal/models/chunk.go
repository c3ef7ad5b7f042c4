// ABOUTME: Chunk model for rulebook passages with provenance metadata
// ABOUTME: Chunks are the unit of embedding and retrieval in the rules index
package models

// Chunk is a bounded span of rulebook text plus where it came from.
// Immutable once created; the ID is generated at chunk time and binds the
// stored embedding 1:1 to this text.
type Chunk struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	Page           int    `json:"page"`
	Chapter        string `json:"chapter"`
	SourceDocument string `json:"source_document"`
}

// ScoredChunk is a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk
	Score float64 `json:"score"`
}
