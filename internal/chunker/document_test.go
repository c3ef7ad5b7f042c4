// ABOUTME: Tests for the rulebook document chunker
// ABOUTME: Covers bullet merging, paragraph splitting, noise filtering, chapter lookup

package chunker

import (
	"strings"
	"testing"

	"github.com/harper/lorekeeper/internal/models"
)

func TestChunkDocument_EmptyDocument(t *testing.T) {
	dc := NewDocumentChunker()

	chunks := dc.ChunkDocument(models.Document{Name: "empty.pdf"})
	if len(chunks) != 0 {
		t.Errorf("Expected zero chunks for empty document, got %d", len(chunks))
	}
}

func TestChunkDocument_Provenance(t *testing.T) {
	dc := NewDocumentChunker()

	doc := models.Document{
		Name: "core_rules.pdf",
		Pages: []models.Page{
			{Number: 1, Text: "This page explains how initiative works during combat rounds."},
			{Number: 5, Text: "This page explains how netrunning architecture floors are generated."},
		},
		TOC: []models.TOCEntry{
			{Page: 1, Title: "Combat"},
			{Page: 4, Title: "Netrunning"},
		},
	}

	chunks := dc.ChunkDocument(doc)
	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}

	if chunks[0].Chapter != "Combat" {
		t.Errorf("Page 1 chapter = %q, want Combat", chunks[0].Chapter)
	}
	if chunks[1].Chapter != "Netrunning" {
		t.Errorf("Page 5 chapter = %q, want Netrunning", chunks[1].Chapter)
	}
	for _, c := range chunks {
		if c.SourceDocument != "core_rules.pdf" {
			t.Errorf("SourceDocument = %q, want core_rules.pdf", c.SourceDocument)
		}
		if c.ID == "" {
			t.Error("Chunk ID should be generated")
		}
	}
	if chunks[0].ID == chunks[1].ID {
		t.Error("Chunk IDs must be unique")
	}
}

func TestChunkDocument_NoTOCUsesUnknown(t *testing.T) {
	dc := NewDocumentChunker()

	doc := models.Document{
		Name: "homebrew.pdf",
		Pages: []models.Page{
			{Number: 3, Text: "A long enough paragraph describing a custom critical injury table."},
		},
	}

	chunks := dc.ChunkDocument(doc)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Chapter != UnknownChapter {
		t.Errorf("Chapter = %q, want %q", chunks[0].Chapter, UnknownChapter)
	}
}

func TestChunkDocument_PageBeforeFirstTOCEntry(t *testing.T) {
	dc := NewDocumentChunker()

	doc := models.Document{
		Name: "book.pdf",
		Pages: []models.Page{
			{Number: 1, Text: "Front matter text long enough to survive the length filter."},
		},
		TOC: []models.TOCEntry{{Page: 4, Title: "Chapter One"}},
	}

	chunks := dc.ChunkDocument(doc)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Chapter != UnknownChapter {
		t.Errorf("Chapter = %q, want %q (no chapter boundary before page 1)", chunks[0].Chapter, UnknownChapter)
	}
}

func TestChunkPage_BulletMerging(t *testing.T) {
	dc := NewDocumentChunker()

	text := "Short\nShort2\nThis is a very long line exceeding thirty characters easily"
	passages := dc.chunkPage(text)

	if len(passages) != 1 {
		t.Fatalf("Expected 1 passage, got %d: %v", len(passages), passages)
	}
	if !strings.Contains(passages[0], "Short • Short2") {
		t.Errorf("Short lines should merge into one bulleted passage, got %q", passages[0])
	}
	if !strings.Contains(passages[0], "exceeding thirty characters") {
		t.Errorf("Long line missing from passage %q", passages[0])
	}
}

func TestChunkPage_BulletPrefixesStripped(t *testing.T) {
	dc := NewDocumentChunker()

	text := "• Armor Jack\n- Flak Vest\n* Subdermal Plating\n\nThe armor table above lists stopping power values."
	passages := dc.chunkPage(text)

	if len(passages) != 2 {
		t.Fatalf("Expected 2 passages, got %d: %v", len(passages), passages)
	}
	want := "Armor Jack • Flak Vest • Subdermal Plating"
	if passages[0] != want {
		t.Errorf("Merged bullets = %q, want %q", passages[0], want)
	}
}

func TestChunkPage_ShortParagraphDropped(t *testing.T) {
	dc := NewDocumentChunker()

	text := "HEADER\n\nA paragraph that is comfortably longer than thirty characters."
	passages := dc.chunkPage(text)

	if len(passages) != 1 {
		t.Fatalf("Expected 1 passage, got %d: %v", len(passages), passages)
	}
	if strings.Contains(passages[0], "HEADER") {
		t.Errorf("Header noise should be dropped, got %q", passages[0])
	}
}

func TestChunkPage_BlankLinesBoundParagraphs(t *testing.T) {
	dc := NewDocumentChunker()

	text := "First paragraph with plenty of characters to keep around.\n\nSecond paragraph, also clearly long enough to keep."
	passages := dc.chunkPage(text)

	if len(passages) != 2 {
		t.Fatalf("Expected 2 passages, got %d: %v", len(passages), passages)
	}
}
