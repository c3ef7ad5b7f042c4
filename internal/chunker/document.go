// ABOUTME: DocumentChunker splits rulebook page text into retrieval-sized passages
// ABOUTME: Merges bullet lists into flowing lines and stamps chapter/page provenance
package chunker

import (
	"strings"

	"github.com/google/uuid"
	"github.com/harper/lorekeeper/internal/models"
)

const (
	// shortLineLen is the threshold under which a line is treated as a
	// bullet fragment and merged with its neighbors.
	shortLineLen = 30

	// minPassageLen filters out headers and page noise after splitting.
	minPassageLen = 30

	// bulletJoin glues merged bullet fragments into one flowing line.
	bulletJoin = " • "

	// UnknownChapter is used for pages with no chapter boundary before them.
	UnknownChapter = "Unknown"
)

var bulletPrefixes = []string{"•", "-", "*"}

// DocumentChunker turns page-oriented documents into passage chunks.
type DocumentChunker struct{}

// NewDocumentChunker creates a new DocumentChunker.
func NewDocumentChunker() *DocumentChunker {
	return &DocumentChunker{}
}

// ChunkDocument splits every page of doc into passage chunks. An empty
// document yields zero chunks. Each chunk carries a fresh unique id plus
// page, chapter, and source-document provenance.
func (dc *DocumentChunker) ChunkDocument(doc models.Document) []models.Chunk {
	chapters := chapterByPage(doc)

	var chunks []models.Chunk
	for _, page := range doc.Pages {
		for _, passage := range dc.chunkPage(page.Text) {
			chunks = append(chunks, models.Chunk{
				ID:             uuid.New().String(),
				Text:           passage,
				Page:           page.Number,
				Chapter:        chapters[page.Number],
				SourceDocument: doc.Name,
			})
		}
	}
	return chunks
}

// chunkPage normalizes one page of raw text into passage candidates:
// consecutive short-or-bulleted lines merge into a single joined line,
// blank lines bound paragraphs, and paragraphs under minPassageLen are
// dropped as headers or noise.
func (dc *DocumentChunker) chunkPage(text string) []string {
	var (
		passages  []string
		paragraph []string // merged lines of the current paragraph
		bullets   []string // pending short/bulleted run
	)

	flushBullets := func() {
		if len(bullets) > 0 {
			paragraph = append(paragraph, strings.Join(bullets, bulletJoin))
			bullets = bullets[:0]
		}
	}
	flushParagraph := func() {
		flushBullets()
		if len(paragraph) == 0 {
			return
		}
		passage := strings.TrimSpace(strings.Join(paragraph, "\n"))
		paragraph = paragraph[:0]
		if len(passage) >= minPassageLen {
			passages = append(passages, passage)
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			flushParagraph()
		case len(line) < shortLineLen || hasBulletPrefix(line):
			bullets = append(bullets, stripBulletPrefix(line))
		default:
			flushBullets()
			paragraph = append(paragraph, line)
		}
	}
	flushParagraph()

	return passages
}

// chapterByPage resolves each page number to its chapter title by walking
// the ordered TOC. Pages before the first entry have no chapter boundary
// and resolve to UnknownChapter, as does everything when the TOC is empty.
func chapterByPage(doc models.Document) map[int]string {
	chapters := make(map[int]string, len(doc.Pages))

	ti := 0
	for _, page := range doc.Pages {
		for ti+1 < len(doc.TOC) && doc.TOC[ti+1].Page <= page.Number {
			ti++
		}
		if len(doc.TOC) == 0 || doc.TOC[ti].Page > page.Number {
			chapters[page.Number] = UnknownChapter
			continue
		}
		chapters[page.Number] = doc.TOC[ti].Title
	}
	return chapters
}

func hasBulletPrefix(line string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func stripBulletPrefix(line string) string {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return strings.TrimSpace(strings.TrimPrefix(line, p))
		}
	}
	return line
}
