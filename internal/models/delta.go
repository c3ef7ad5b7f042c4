// ABOUTME: Typed delta payloads extracted from one transcript window
// ABOUTME: Deltas carry natural-language names; identity is assigned later by slugging
package models

// LocationDelta proposes a create/update for one location. All fields are
// names or free text; Parent is the *name* of the parent location, slugged
// by the merge, never an id chosen by the extractor.
type LocationDelta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Region      string `json:"region,omitempty"`
	Parent      string `json:"parent,omitempty"`
}

// NPCDelta proposes a create/update for one NPC. Faction and Home are names.
type NPCDelta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Role        string `json:"role,omitempty"`
	Faction     string `json:"faction,omitempty"`
	Home        string `json:"home,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// FactionDelta proposes a create/update for one faction.
type FactionDelta struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
}

// ChunkResult is everything extracted from a single transcript window:
// a concise summary plus only the NEW or UPDATED entities the window
// mentions. A window that failed to parse contributes the zero value.
type ChunkResult struct {
	Summary   string          `json:"summary"`
	Locations []LocationDelta `json:"locations"`
	NPCs      []NPCDelta      `json:"npcs"`
	Factions  []FactionDelta  `json:"factions"`
}

// Empty reports whether the result carries no summary and no deltas.
func (r ChunkResult) Empty() bool {
	return r.Summary == "" && len(r.Locations) == 0 && len(r.NPCs) == 0 && len(r.Factions) == 0
}
