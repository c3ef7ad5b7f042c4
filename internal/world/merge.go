// ABOUTME: Merges extracted deltas into the world state with upsert semantics
// ABOUTME: Typed per-kind updates; last-write-wins per non-empty field; references are slugged
package world

import (
	"fmt"

	"github.com/harper/lorekeeper/internal/ident"
	"github.com/harper/lorekeeper/internal/models"
)

// Merger resolves deltas against the world state and persists after every
// application. Deltas must be applied in chronological chunk order: later
// chunks overwrite the fields earlier chunks touched.
type Merger struct {
	state *WorldState
	store *Store
}

// NewMerger creates a merger over the given state and store.
func NewMerger(state *WorldState, store *Store) *Merger {
	return &Merger{state: state, store: store}
}

// State returns the merged world state.
func (m *Merger) State() *WorldState {
	return m.state
}

// Apply merges one chunk's deltas into the state, then persists the
// affected collections. Applying the same result twice is idempotent.
func (m *Merger) Apply(result models.ChunkResult) error {
	for _, d := range result.Locations {
		ApplyLocationDelta(m.state, d)
	}
	for _, d := range result.NPCs {
		ApplyNPCDelta(m.state, d)
	}
	for _, d := range result.Factions {
		ApplyFactionDelta(m.state, d)
	}

	if err := m.store.Save(m.state); err != nil {
		return fmt.Errorf("persisting merged state: %w", err)
	}
	return nil
}

// ApplyLocationDelta upserts one location. The delta's Parent is a name;
// it is slugged before storage and need not reference an existing location
// (forward references resolve lazily at read time).
func ApplyLocationDelta(ws *WorldState, d models.LocationDelta) {
	id := ident.Slug(d.Name)
	if id == "" {
		return
	}

	loc, ok := ws.Locations[id]
	if !ok {
		loc = models.Location{ID: id, Type: models.DefaultLocationType}
	}

	loc.Name = d.Name
	if d.Description != "" {
		loc.Description = d.Description
	}
	if d.Region != "" {
		loc.Region = d.Region
	}
	if d.Parent != "" {
		loc.ParentLocation = ident.Slug(d.Parent)
	}

	ws.Locations[id] = loc
}

// ApplyNPCDelta upserts one NPC. Faction and Home are names and are
// slugged; Home sets both the home and current location, since a freshly
// mentioned NPC is where their haunt is until a later delta moves them.
func ApplyNPCDelta(ws *WorldState, d models.NPCDelta) {
	id := ident.Slug(d.Name)
	if id == "" {
		return
	}

	npc, ok := ws.NPCs[id]
	if !ok {
		npc = models.NPC{ID: id, Role: models.DefaultNPCRole}
	}

	npc.Name = d.Name
	if d.Description != "" {
		npc.Description = d.Description
	}
	if d.Role != "" {
		npc.Role = d.Role
	}
	if d.Faction != "" {
		npc.Affiliation = ident.Slug(d.Faction)
	}
	if d.Home != "" {
		home := ident.Slug(d.Home)
		npc.HomeLocation = home
		npc.CurrentLocation = home
	}
	if d.Notes != "" {
		npc.Notes = d.Notes
	}

	ws.NPCs[id] = npc
}

// ApplyFactionDelta upserts one faction.
func ApplyFactionDelta(ws *WorldState, d models.FactionDelta) {
	id := ident.Slug(d.Name)
	if id == "" {
		return
	}

	fac, ok := ws.Factions[id]
	if !ok {
		fac = models.Faction{ID: id, Type: models.DefaultFactionType}
	}

	fac.Name = d.Name
	if d.Description != "" {
		fac.Description = d.Description
	}
	if d.Type != "" {
		fac.Type = d.Type
	}

	ws.Factions[id] = fac
}
