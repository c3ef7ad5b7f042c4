// ABOUTME: Prompt text and JSON schema for extraction, answering, and recaps
// ABOUTME: The schema constrains extraction to new-or-changed entries with required name+description
package llm

import (
	"fmt"
	"strings"
)

// extractionSystemPrompt instructs the scribe model. Entries must be
// limited to NEW or UPDATED entities so the merge does not churn the whole
// background set on every chunk.
const extractionSystemPrompt = `You are an AI scribe for a tabletop RPG session.
For the given transcript chunk, (1) write a concise summary, then (2) fill the
'locations', 'npcs', and 'factions' arrays with only NEW or UPDATED entries -
never the full existing background set. Refer to entities by their natural
names; do not invent identifiers. Follow the supplied schema exactly.`

// chunkResultSchema is the structured-output schema for one transcript
// chunk: a summary plus world-state deltas keyed by natural-language names.
const chunkResultSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["summary", "locations", "npcs", "factions"],
  "properties": {
    "summary": {"type": "string"},
    "locations": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name", "description"],
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "region": {"type": "string"},
          "parent": {"type": "string"}
        }
      }
    },
    "npcs": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name", "description"],
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "role": {"type": "string"},
          "faction": {"type": "string"},
          "home": {"type": "string"},
          "notes": {"type": "string"}
        }
      }
    },
    "factions": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name", "description"],
        "properties": {
          "name": {"type": "string"},
          "description": {"type": "string"},
          "type": {"type": "string"}
        }
      }
    }
  }
}`

// answerSystemPrompt grounds rules answers in the retrieved passages.
const answerSystemPrompt = `You are a tabletop RPG rules assistant. Answer the
user's question using only the supplied rules passages. Include citations
(source document, page number, chapter) for every claim. If the passages do
not cover the question, say so explicitly instead of guessing.`

// buildRecapPrompt asks for one coherent recap of the ordered chunk
// summaries, preserving chronology.
func buildRecapPrompt(summaries []string) string {
	var sb strings.Builder
	sb.WriteString("Combine the following ordered chunk summaries into one coherent ")
	sb.WriteString("session recap of at most 200 words, preserving chronology.\n\n")
	for i, s := range summaries {
		fmt.Fprintf(&sb, "%d. %s\n\n", i+1, s)
	}
	return sb.String()
}
