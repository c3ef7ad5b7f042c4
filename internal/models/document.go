// ABOUTME: Page-oriented document model consumed by the document chunker
// ABOUTME: PDF text and outline extraction happen upstream; this is their output shape
package models

// Page holds the raw extracted text of one document page.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// TOCEntry maps a start page to a chapter title. Entries are ordered by
// page; a chapter runs until the next entry's start page.
type TOCEntry struct {
	Page  int    `json:"page"`
	Title string `json:"title"`
}

// Document is a rulebook as delivered by the extraction step: per-page raw
// text plus the table of contents. An empty TOC means every page resolves
// to the "Unknown" chapter.
type Document struct {
	Name  string     `json:"name"`
	Pages []Page     `json:"pages"`
	TOC   []TOCEntry `json:"toc"`
}
