// ABOUTME: Strict decoding of structured extraction responses
// ABOUTME: A response that does not validate is a parse failure, never salvaged
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/lorekeeper/internal/models"
)

// ParseChunkResult strict-decodes a raw extraction response against the
// chunk-result schema. Markdown code fences are stripped first (some models
// wrap JSON despite instructions), then the payload must decode with no
// unknown fields and carry name+description on every entry. Any violation
// is an error; callers treat it as a per-chunk parse failure.
func ParseChunkResult(raw string) (models.ChunkResult, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	if cleaned == "" {
		return models.ChunkResult{}, fmt.Errorf("extraction response is empty")
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()

	var result models.ChunkResult
	if err := dec.Decode(&result); err != nil {
		return models.ChunkResult{}, fmt.Errorf("extraction response does not match schema: %w", err)
	}

	if err := validateChunkResult(&result); err != nil {
		return models.ChunkResult{}, err
	}
	return result, nil
}

func validateChunkResult(r *models.ChunkResult) error {
	for i := range r.Locations {
		d := &r.Locations[i]
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" || d.Description == "" {
			return fmt.Errorf("location entry %d missing required name or description", i)
		}
	}
	for i := range r.NPCs {
		d := &r.NPCs[i]
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" || d.Description == "" {
			return fmt.Errorf("npc entry %d missing required name or description", i)
		}
	}
	for i := range r.Factions {
		d := &r.Factions[i]
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" || d.Description == "" {
			return fmt.Errorf("faction entry %d missing required name or description", i)
		}
	}
	return nil
}

// stripCodeFence removes a markdown code block wrapper (```json ... ```).
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
