// ABOUTME: OpenAI client for embeddings, structured extraction, and grounded answering
// ABOUTME: Wraps sashabaranov/go-openai with retries, timeouts, and backoff
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/lorekeeper/internal/models"
	"github.com/harper/lorekeeper/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for extraction and answering.
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings.
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
)

// ClientConfig holds configuration for the OpenAI client.
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// Client wraps the OpenAI API with retry logic. It is the single external
// collaborator for embedding computation and LLM generation.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a new OpenAI client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	return &Client{
		client:         openai.NewClient(cfg.APIKey),
		chatModel:      cfg.ChatModel,
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// EmbedBatch computes embeddings for a batch of texts in one API call.
// The caller bounds the batch size; order of the returned vectors matches
// the input order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) != len(texts) {
			lastErr = fmt.Errorf("attempt %d: got %d embeddings for %d texts", attempt+1, len(resp.Data), len(texts))
			continue
		}

		vectors := make([][]float64, len(resp.Data))
		for i, d := range resp.Data {
			v := make([]float64, len(d.Embedding))
			for j, f := range d.Embedding {
				v[j] = float64(f)
			}
			vectors[i] = v
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("failed to embed batch after %d attempts: %w", c.maxRetries+1, lastErr)
}

// EmbedQuery computes the embedding for a single query string.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// ExtractChunk sends one transcript window to the extraction backend with
// the chunk-result JSON schema and strict-decodes the response. The
// extractor returns natural-language names only; identity assignment
// happens downstream in the world-state merge.
func (c *Client) ExtractChunk(ctx context.Context, chunk string) (models.ChunkResult, error) {
	req := openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractionSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: chunk},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        "chunk_result",
				Description: "Summary plus world-state deltas for one transcript chunk",
				Schema:      json.RawMessage(chunkResultSchema),
				Strict:      true,
			},
		},
	}

	content, err := c.complete(ctx, req)
	if err != nil {
		return models.ChunkResult{}, err
	}
	return ParseChunkResult(content)
}

// Answer composes a grounded answer to a rules question from the retrieved
// passages. The model is instructed to cite source, page, and chapter and
// to say so when the passages do not cover the question.
func (c *Client) Answer(ctx context.Context, question, passages string, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: answerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("%s\n\nRelevant Rules:\n%s", question, passages)},
		},
		Temperature: temperature,
	}
	return c.complete(ctx, req)
}

// SummarizeSession combines ordered chunk summaries into one session recap.
func (c *Client) SummarizeSession(ctx context.Context, summaries []string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a concise narrator."},
			{Role: openai.ChatMessageRoleUser, Content: buildRecapPrompt(summaries)},
		},
		Temperature: 0.3,
	}
	return c.complete(ctx, req)
}

// complete runs one chat completion with the client's retry policy and
// returns the first choice's content.
func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.Backoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, req)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("chat completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
