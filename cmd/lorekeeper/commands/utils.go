// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Wiring helpers for config, vector store backends, and the rules index
package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/lorekeeper/internal/config"
	"github.com/harper/lorekeeper/internal/index"
	"github.com/harper/lorekeeper/internal/llm"
	"github.com/harper/lorekeeper/internal/vectorstore"
	"github.com/harper/lorekeeper/internal/vectorstore/memory"
	"github.com/harper/lorekeeper/internal/vectorstore/qdrant"
	"github.com/harper/lorekeeper/internal/vectorstore/sqlite"
	"github.com/harper/lorekeeper/internal/world"
)

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// sortedKeys returns a map's keys in sorted order
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// loadConfig loads .env (if present) and the environment configuration.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openVectorStore builds the configured vector store backend. The returned
// closer is a no-op for backends without one.
func openVectorStore(cfg *config.Config) (vectorstore.Store, func() error, error) {
	switch cfg.VectorBackend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.VectorDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening vector database: %w", err)
		}
		return store, store.Close, nil
	case config.BackendQdrant:
		store := qdrant.New(qdrant.Config{
			URL:        cfg.QdrantURL,
			APIKey:     cfg.QdrantAPIKey,
			Collection: cfg.QdrantCollection,
			Timeout:    cfg.Timeout,
		})
		return store, func() error { return nil }, nil
	case config.BackendMemory:
		return memory.New(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown vector backend %q (want %s, %s, or %s)",
			cfg.VectorBackend, config.BackendSQLite, config.BackendQdrant, config.BackendMemory)
	}
}

// newLLMClient builds the OpenAI client, or returns nil when no API key is
// configured. Callers that need embeddings must treat nil as an error.
func newLLMClient(cfg *config.Config) (*llm.Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, nil
	}
	return llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
}

// openRulesIndex wires the vector store and OpenAI client into a rules
// index. Embeddings are mandatory for every index operation, so a missing
// API key is an error here; answering stays optional inside the index.
func openRulesIndex(cfg *config.Config) (*index.RulesIndex, func() error, error) {
	client, err := newLLMClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, nil, fmt.Errorf("OPENAI_API_KEY is required for rulebook indexing and search")
	}

	store, closeStore, err := openVectorStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	return index.New(store, client, client, cfg.EmbedBatchSize), closeStore, nil
}

// openWorldStore returns the world state store for the configured path.
func openWorldStore(cfg *config.Config) *world.Store {
	return world.NewStore(cfg.WorldStatePath)
}

// printJSON writes indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
	return nil
}
