// ABOUTME: Tests for the session transcript pipeline
// ABOUTME: Uses fake extractor/summarizer to verify ordering, failure isolation, and recap output
package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/lorekeeper/internal/models"
	"github.com/harper/lorekeeper/internal/world"
)

// wordCounter treats every whitespace-separated word as one token.
type wordCounter struct{}

func (wordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

type fakeExtractor struct {
	results []models.ChunkResult
	errs    []error
	chunks  []string
}

func (f *fakeExtractor) ExtractChunk(_ context.Context, chunk string) (models.ChunkResult, error) {
	i := len(f.chunks)
	f.chunks = append(f.chunks, chunk)
	if i < len(f.errs) && f.errs[i] != nil {
		return models.ChunkResult{}, f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return models.ChunkResult{}, nil
}

type fakeSummarizer struct {
	got   []string
	recap string
	err   error
	calls int
}

func (f *fakeSummarizer) SummarizeSession(_ context.Context, summaries []string) (string, error) {
	f.calls++
	f.got = summaries
	return f.recap, f.err
}

func writeTranscript(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestProcessor(t *testing.T, ex Extractor, sum Summarizer, chunkTokens int) (*Processor, *world.Merger, string) {
	t.Helper()
	dir := t.TempDir()
	merger := world.NewMerger(world.NewWorldState(), world.NewStore(filepath.Join(dir, "world_state.json")))
	p := NewProcessor(ex, sum, wordCounter{}, merger, filepath.Join(dir, "summaries"), chunkTokens)
	p.now = func() time.Time { return time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC) }
	return p, merger, dir
}

func TestProcessMergesChunksInOrder(t *testing.T) {
	ex := &fakeExtractor{results: []models.ChunkResult{
		{
			Summary: "The party reaches Gloomharbor.",
			NPCs:    []models.NPCDelta{{Name: "Mira", Description: "A fence", Home: "Gloomharbor"}},
		},
		{
			Summary: "Mira flees to the Undercroft.",
			NPCs:    []models.NPCDelta{{Name: "Mira", Description: "A fence on the run", Home: "The Undercroft"}},
		},
	}}
	sum := &fakeSummarizer{recap: "Mira fled."}
	// Two tokens per chunk forces the four-word transcript into two chunks.
	p, merger, _ := newTestProcessor(t, ex, sum, 2)

	path := writeTranscript(t, "session_12.txt", "one two three four")
	result, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if result.Chunks != 2 {
		t.Fatalf("expected 2 chunks, got %d", result.Chunks)
	}

	npc := merger.State().NPCs["mira"]
	if npc.Description != "A fence on the run" {
		t.Errorf("description = %q, want the later chunk to win", npc.Description)
	}
	if npc.CurrentLocation != "the_undercroft" {
		t.Errorf("current location = %q, want the later chunk's home", npc.CurrentLocation)
	}
}

func TestProcessIsolatesFailedChunks(t *testing.T) {
	ex := &fakeExtractor{
		results: []models.ChunkResult{
			{},
			{Summary: "Second chunk landed.", Factions: []models.FactionDelta{{Name: "Iron Ring", Description: "Smugglers"}}},
		},
		errs: []error{errors.New("model returned garbage"), nil},
	}
	sum := &fakeSummarizer{recap: "Half a session."}
	p, merger, _ := newTestProcessor(t, ex, sum, 2)

	path := writeTranscript(t, "session.txt", "one two three four")
	result, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("a failed chunk must not abort the session: %v", err)
	}
	if result.Failed != 1 {
		t.Errorf("expected 1 failed chunk, got %d", result.Failed)
	}
	if _, ok := merger.State().Factions["iron_ring"]; !ok {
		t.Error("the surviving chunk's deltas should still merge")
	}
	if len(sum.got) != 1 || sum.got[0] != "Second chunk landed." {
		t.Errorf("summarizer should only see surviving summaries, got %v", sum.got)
	}
}

func TestProcessWritesDatedRecapArtifact(t *testing.T) {
	ex := &fakeExtractor{results: []models.ChunkResult{{Summary: "Things happened."}}}
	sum := &fakeSummarizer{recap: "A short recap."}
	p, _, dir := newTestProcessor(t, ex, sum, 100)

	path := writeTranscript(t, "Session 12 Notes.txt", "a very short transcript")
	result, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	want := filepath.Join(dir, "summaries", "2026-03-14_session_12_notes.md")
	if result.SummaryPath != want {
		t.Errorf("summary path = %q, want %q", result.SummaryPath, want)
	}
	data, err := os.ReadFile(result.SummaryPath)
	if err != nil {
		t.Fatalf("reading recap artifact: %v", err)
	}
	if strings.TrimSpace(string(data)) != "A short recap." {
		t.Errorf("artifact content = %q", string(data))
	}
}

func TestProcessSkipsRecapWhenNothingExtracted(t *testing.T) {
	ex := &fakeExtractor{results: []models.ChunkResult{{}, {}}}
	sum := &fakeSummarizer{recap: "should never be asked"}
	p, _, dir := newTestProcessor(t, ex, sum, 2)

	path := writeTranscript(t, "quiet.txt", "one two three four")
	result, err := p.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if sum.calls != 0 {
		t.Error("summarizer should not be called when no chunk produced a summary")
	}
	if result.Recap != "" || result.SummaryPath != "" {
		t.Errorf("expected no recap artifact, got %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dir, "summaries")); !os.IsNotExist(err) {
		t.Error("summaries directory should not be created for an empty session")
	}
}

func TestProcessMissingTranscript(t *testing.T) {
	p, _, _ := newTestProcessor(t, &fakeExtractor{}, &fakeSummarizer{}, 10)
	if _, err := p.Process(context.Background(), filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected an error for a missing transcript")
	}
}
