// ABOUTME: RulesIndex builds and queries the semantic rulebook index
// ABOUTME: Build-once guard, batched embedding, retrieval, and grounded answering
package index

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/harper/lorekeeper/internal/chunker"
	"github.com/harper/lorekeeper/internal/models"
	"github.com/harper/lorekeeper/internal/vectorstore"
)

// ErrAnswererNotConfigured is returned by Answer when no chat backend was
// supplied. Retrieval-only search works without one.
var ErrAnswererNotConfigured = errors.New("index: answer backend not configured (set OPENAI_API_KEY)")

// DefaultBatchSize bounds per-call embedding payload size.
const DefaultBatchSize = 128

// Embedder computes embedding vectors for chunk texts and queries.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
}

// Answerer composes a grounded free-text answer from retrieved passages.
type Answerer interface {
	Answer(ctx context.Context, question, passages string, temperature float32) (string, error)
}

// RulesIndex embeds rulebook chunks into a vector store and answers
// similarity queries over them.
type RulesIndex struct {
	store     vectorstore.Store
	embedder  Embedder
	answerer  Answerer // optional; Answer fails without it
	chunker   *chunker.DocumentChunker
	batchSize int
}

// New creates a RulesIndex. answerer may be nil for retrieval-only use.
func New(store vectorstore.Store, embedder Embedder, answerer Answerer, batchSize int) *RulesIndex {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &RulesIndex{
		store:     store,
		embedder:  embedder,
		answerer:  answerer,
		chunker:   chunker.NewDocumentChunker(),
		batchSize: batchSize,
	}
}

// Build chunks, embeds, and upserts every document. If the store already
// holds entries the call is a no-op, so repeated runs never re-embed.
// Document order does not affect final index contents. A failed build is
// not resumable; restart it against an empty store.
func (ri *RulesIndex) Build(ctx context.Context, docs []models.Document) error {
	n, err := ri.store.Count()
	if err != nil {
		return fmt.Errorf("checking index state: %w", err)
	}
	if n > 0 {
		log.Printf("index already holds %d chunks, skipping rebuild", n)
		return nil
	}

	var chunks []models.Chunk
	for _, doc := range docs {
		chunks = append(chunks, ri.chunker.ChunkDocument(doc)...)
	}
	log.Printf("indexing %d chunks from %d documents", len(chunks), len(docs))

	for start := 0; start < len(chunks); start += ri.batchSize {
		end := start + ri.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := ri.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch at chunk %d: %w", start, err)
		}
		if err := ri.store.Upsert(batch, vectors); err != nil {
			return fmt.Errorf("upserting batch at chunk %d: %w", start, err)
		}
	}
	return nil
}

// Search returns the top-k chunks for the query, ranked by similarity
// descending. A never-built index yields an empty result, not an error.
func (ri *RulesIndex) Search(ctx context.Context, query string, k int) ([]models.ScoredChunk, error) {
	n, err := ri.store.Count()
	if err != nil {
		return nil, fmt.Errorf("checking index state: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	vector, err := ri.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return ri.store.Query(vector, k)
}

// Answer retrieves the top-k passages and delegates grounded answer
// composition to the answer backend.
func (ri *RulesIndex) Answer(ctx context.Context, query string, k int, temperature float32) (string, error) {
	if ri.answerer == nil {
		return "", ErrAnswererNotConfigured
	}

	results, err := ri.Search(ctx, query, k)
	if err != nil {
		return "", err
	}
	return ri.answerer.Answer(ctx, query, FormatPassages(results), temperature)
}

// PageChunks returns every indexed chunk for one document page, for
// provenance inspection.
func (ri *RulesIndex) PageChunks(source string, page int) ([]models.Chunk, error) {
	return ri.store.FilterByPage(source, page)
}

// FormatPassages renders retrieved chunks as citation-ready context:
// one block per chunk, headed by source, page, and chapter.
func FormatPassages(results []models.ScoredChunk) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("%s [p.%d - %s]\n%s", r.SourceDocument, r.Page, r.Chapter, r.Text)
	}
	return strings.Join(blocks, "\n\n")
}
