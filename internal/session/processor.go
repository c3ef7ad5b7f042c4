// ABOUTME: Session transcript pipeline: split, extract, merge, summarize
// ABOUTME: Extraction failures on a chunk are logged and skipped, never abort the session
package session

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/lorekeeper/internal/chunker"
	"github.com/harper/lorekeeper/internal/ident"
	"github.com/harper/lorekeeper/internal/models"
	"github.com/harper/lorekeeper/internal/world"
)

// Extractor turns one transcript chunk into world state deltas.
type Extractor interface {
	ExtractChunk(ctx context.Context, chunk string) (models.ChunkResult, error)
}

// Summarizer condenses per-chunk summaries into a session recap.
type Summarizer interface {
	SummarizeSession(ctx context.Context, summaries []string) (string, error)
}

// Processor runs session transcripts through extraction and into the world
// state. Chunks are processed in transcript order so later events overwrite
// earlier ones.
type Processor struct {
	extractor    Extractor
	summarizer   Summarizer
	counter      chunker.TokenCounter
	merger       *world.Merger
	summariesDir string
	chunkTokens  int
	now          func() time.Time
}

// Result reports what a processed session produced.
type Result struct {
	Chunks      int
	Failed      int
	Recap       string
	SummaryPath string
}

// NewProcessor wires a processor. chunkTokens bounds the token size of each
// transcript chunk sent to the extractor.
func NewProcessor(extractor Extractor, summarizer Summarizer, counter chunker.TokenCounter, merger *world.Merger, summariesDir string, chunkTokens int) *Processor {
	return &Processor{
		extractor:    extractor,
		summarizer:   summarizer,
		counter:      counter,
		merger:       merger,
		summariesDir: summariesDir,
		chunkTokens:  chunkTokens,
		now:          time.Now,
	}
}

// Process reads a transcript file, extracts deltas chunk by chunk, merges
// them into the world state, and writes a dated recap artifact. A chunk
// whose extraction fails contributes nothing; the rest of the session still
// lands.
func (p *Processor) Process(ctx context.Context, transcriptPath string) (*Result, error) {
	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	chunks := chunker.SplitByTokens(string(data), p.chunkTokens, p.counter)
	result := &Result{Chunks: len(chunks)}

	var summaries []string
	for i, chunk := range chunks {
		extracted, err := p.extractor.ExtractChunk(ctx, chunk)
		if err != nil {
			log.Printf("extraction failed for chunk %d/%d of %s: %v", i+1, len(chunks), transcriptPath, err)
			result.Failed++
			continue
		}
		if extracted.Empty() {
			continue
		}
		if err := p.merger.Apply(extracted); err != nil {
			return nil, fmt.Errorf("merging chunk %d: %w", i+1, err)
		}
		if s := strings.TrimSpace(extracted.Summary); s != "" {
			summaries = append(summaries, s)
		}
	}

	if len(summaries) == 0 {
		return result, nil
	}

	recap, err := p.summarizer.SummarizeSession(ctx, summaries)
	if err != nil {
		return nil, fmt.Errorf("summarizing session: %w", err)
	}
	result.Recap = recap

	path, err := p.writeRecap(transcriptPath, recap)
	if err != nil {
		return nil, err
	}
	result.SummaryPath = path
	return result, nil
}

// writeRecap stores the recap as <summariesDir>/<date>_<slug(stem)>.md.
func (p *Processor) writeRecap(transcriptPath, recap string) (string, error) {
	if err := os.MkdirAll(p.summariesDir, 0755); err != nil {
		return "", fmt.Errorf("creating summaries directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))
	name := fmt.Sprintf("%s_%s.md", p.now().Format("2006-01-02"), ident.Slug(stem))
	path := filepath.Join(p.summariesDir, name)

	if err := os.WriteFile(path, []byte(recap+"\n"), 0644); err != nil {
		return "", fmt.Errorf("writing session recap: %w", err)
	}
	return path, nil
}
