// ABOUTME: SQLite-backed vector store; vectors persist as little-endian float64 BLOBs
// ABOUTME: Similarity search loads all vectors and ranks by cosine in process
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/harper/lorekeeper/internal/models"
	"github.com/harper/lorekeeper/internal/vectorstore"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	page INTEGER NOT NULL,
	chapter TEXT NOT NULL,
	source_document TEXT NOT NULL,
	vector BLOB NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chunks_source_page ON chunks(source_document, page);
`

// Store is a durable vector store in a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the store at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating vector store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating vector store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Count returns the number of stored chunks.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Upsert stores chunks and vectors in one transaction, keyed by chunk id.
func (s *Store) Upsert(chunks []models.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning upsert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO chunks (id, text, page, chapter, source_document, vector)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			page = excluded.page,
			chapter = excluded.chapter,
			source_document = excluded.source_document,
			vector = excluded.vector
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for i, c := range chunks {
		if _, err := stmt.Exec(c.ID, c.Text, c.Page, c.Chapter, c.SourceDocument, vectorToBlob(vectors[i])); err != nil {
			return fmt.Errorf("upserting chunk %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

// Query loads every stored vector and ranks by cosine similarity.
func (s *Store) Query(vector []float64, k int) ([]models.ScoredChunk, error) {
	rows, err := s.db.Query(`SELECT id, text, page, chapter, source_document, vector FROM chunks`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []models.ScoredChunk
	for rows.Next() {
		var (
			c    models.Chunk
			blob []byte
		)
		if err := rows.Scan(&c.ID, &c.Text, &c.Page, &c.Chapter, &c.SourceDocument, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		results = append(results, models.ScoredChunk{
			Chunk: c,
			Score: vectorstore.Cosine(vector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// FilterByPage returns all chunks stored for one document page.
func (s *Store) FilterByPage(source string, page int) ([]models.Chunk, error) {
	rows, err := s.db.Query(`
		SELECT id, text, page, chapter, source_document
		FROM chunks
		WHERE source_document = ? AND page = ?
		ORDER BY id
	`, source, page)
	if err != nil {
		return nil, fmt.Errorf("filtering chunks: %w", err)
	}
	defer rows.Close()

	var out []models.Chunk
	for rows.Next() {
		var c models.Chunk
		if err := rows.Scan(&c.ID, &c.Text, &c.Page, &c.Chapter, &c.SourceDocument); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// vectorToBlob converts a vector to a little-endian float64 BLOB.
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a BLOB back to a vector.
func blobToVector(blob []byte) []float64 {
	vector := make([]float64, len(blob)/8)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[i*8:]))
	}
	return vector
}
