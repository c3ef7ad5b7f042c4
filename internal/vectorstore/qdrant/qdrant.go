// ABOUTME: Minimal Qdrant REST client implementing the vector store interface
// ABOUTME: Creates the collection on first upsert; cosine distance, payload round-trip
package qdrant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/harper/lorekeeper/internal/models"
)

// Config contains connection details for a Qdrant instance.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Store talks to Qdrant over its REST API.
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// New creates a Qdrant-backed store.
func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Count returns the exact number of points in the collection. A missing
// collection counts as empty rather than erroring, so the build-once guard
// works before the first build.
func (s *Store) Count() (int, error) {
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection),
		map[string]any{"exact": true}, &resp)
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return resp.Result.Count, nil
}

// Upsert ensures the collection exists, then upserts points keyed by chunk id.
func (s *Store) Upsert(chunks []models.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	if err := s.ensureCollection(len(vectors[0])); err != nil {
		return err
	}

	points := make([]map[string]any, len(chunks))
	for i, c := range chunks {
		points[i] = map[string]any{
			"id":     c.ID,
			"vector": vectors[i],
			"payload": map[string]any{
				"text":            c.Text,
				"page":            c.Page,
				"chapter":         c.Chapter,
				"source_document": c.SourceDocument,
			},
		}
	}
	return s.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection),
		map[string]any{"points": points}, nil)
}

// Query runs a vector search and maps payloads back to chunks.
func (s *Store) Query(vector []float64, k int) ([]models.ScoredChunk, error) {
	if k <= 0 {
		k = 5
	}
	var resp struct {
		Result []struct {
			ID      string         `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection),
		map[string]any{"vector": vector, "limit": k, "with_payload": true}, &resp)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	results := make([]models.ScoredChunk, 0, len(resp.Result))
	for _, r := range resp.Result {
		c := chunkFromPayload(r.Payload)
		c.ID = r.ID
		results = append(results, models.ScoredChunk{Chunk: c, Score: r.Score})
	}
	return results, nil
}

// FilterByPage scrolls the collection with a payload-equality filter.
func (s *Store) FilterByPage(source string, page int) ([]models.Chunk, error) {
	var resp struct {
		Result struct {
			Points []struct {
				ID      string         `json:"id"`
				Payload map[string]any `json:"payload"`
			} `json:"points"`
		} `json:"result"`
	}
	req := map[string]any{
		"limit":        1000,
		"with_payload": true,
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": "source_document", "match": map[string]any{"value": source}},
				{"key": "page", "match": map[string]any{"value": page}},
			},
		},
	}
	err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.collection), req, &resp)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]models.Chunk, 0, len(resp.Result.Points))
	for _, p := range resp.Result.Points {
		c := chunkFromPayload(p.Payload)
		c.ID = p.ID
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) ensureCollection(dimension int) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 409 when the collection already exists.
	err := s.putJSON(fmt.Sprintf("%s/collections/%s", s.url, s.collection), body, nil)
	if err != nil && !isConflict(err) {
		return err
	}
	return nil
}

func chunkFromPayload(payload map[string]any) models.Chunk {
	var c models.Chunk
	if v, ok := payload["text"].(string); ok {
		c.Text = v
	}
	if v, ok := payload["page"].(float64); ok {
		c.Page = int(v)
	}
	if v, ok := payload["chapter"].(string); ok {
		c.Chapter = v
	}
	if v, ok := payload["source_document"].(string); ok {
		c.SourceDocument = v
	}
	return c
}

// statusError carries the HTTP status of a failed Qdrant call.
type statusError struct {
	status int
	url    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("qdrant request %s failed: HTTP %d", e.url, e.status)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.status == http.StatusNotFound
}

func isConflict(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.status == http.StatusConflict
}

func (s *Store) putJSON(url string, body, out any) error {
	return s.doJSON(http.MethodPut, url, body, out)
}

func (s *Store) postJSON(url string, body, out any) error {
	return s.doJSON(http.MethodPost, url, body, out)
}

func (s *Store) doJSON(method, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling qdrant request: %w", err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building qdrant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &statusError{status: resp.StatusCode, url: url}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding qdrant response: %w", err)
		}
	}
	return nil
}
