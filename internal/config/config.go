// ABOUTME: Centralized configuration for the Lorekeeper CLI
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Vector store backends selectable via LOREKEEPER_VECTOR_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendQdrant = "qdrant"
	BackendMemory = "memory"
)

// Config holds all configuration for Lorekeeper. Components receive it (or
// slices of it) at construction; there are no process-wide singletons.
type Config struct {
	// Paths
	DataDir        string // base data directory
	LibraryDir     string // extracted rulebook documents (JSON sidecars)
	WorldStatePath string // world-state JSON file
	SummariesDir   string // per-session recap artifacts

	// Vector store
	VectorBackend    string
	VectorDBPath     string // sqlite backend
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Pipeline tuneables
	ChunkTokens       int     // transcript window budget
	EmbedBatchSize    int     // bounds per-call payload size, not parallelism
	TopK              int     // default retrieval depth
	AnswerTemperature float32
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	dataDir := getEnv("LOREKEEPER_DATA_DIR", filepath.Join(dataHome(), "lorekeeper"))

	cfg := &Config{
		DataDir:        dataDir,
		LibraryDir:     getEnv("LOREKEEPER_LIBRARY_DIR", filepath.Join(dataDir, "library")),
		WorldStatePath: getEnv("LOREKEEPER_WORLD_STATE", filepath.Join(dataDir, "world_state.json")),
		SummariesDir:   getEnv("LOREKEEPER_SUMMARIES_DIR", filepath.Join(dataDir, "session_summaries")),

		VectorBackend:    getEnv("LOREKEEPER_VECTOR_BACKEND", BackendSQLite),
		VectorDBPath:     getEnv("LOREKEEPER_VECTOR_DB", filepath.Join(dataDir, "rules_index.db")),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     os.Getenv("QDRANT_API_KEY"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "lorekeeper_rules"),

		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("LOREKEEPER_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("LOREKEEPER_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("LOREKEEPER_TIMEOUT", 60*time.Second),
		MaxRetries:     getEnvInt("LOREKEEPER_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("LOREKEEPER_RETRY_DELAY", 2*time.Second),

		ChunkTokens:       getEnvInt("LOREKEEPER_CHUNK_TOKENS", 3000),
		EmbedBatchSize:    getEnvInt("LOREKEEPER_EMBED_BATCH", 128),
		TopK:              getEnvInt("LOREKEEPER_TOP_K", 5),
		AnswerTemperature: getEnvFloat32("LOREKEEPER_ANSWER_TEMPERATURE", 0.4),
	}

	return cfg, cfg.Validate()
}

// Validate checks ranges and the backend selector.
func (c *Config) Validate() error {
	switch c.VectorBackend {
	case BackendSQLite, BackendQdrant, BackendMemory:
	default:
		return fmt.Errorf("LOREKEEPER_VECTOR_BACKEND must be one of sqlite, qdrant, memory; got %q", c.VectorBackend)
	}
	if c.ChunkTokens <= 0 {
		return fmt.Errorf("LOREKEEPER_CHUNK_TOKENS must be positive, got %d", c.ChunkTokens)
	}
	if c.EmbedBatchSize <= 0 {
		return fmt.Errorf("LOREKEEPER_EMBED_BATCH must be positive, got %d", c.EmbedBatchSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("LOREKEEPER_TOP_K must be positive, got %d", c.TopK)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("LOREKEEPER_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

func dataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	return xdg.DataHome
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat32(key string, defaultVal float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
