// ABOUTME: WorldState holds the campaign's locations, factions, and NPCs keyed by slug id
// ABOUTME: Location parent links are untrusted; traversals are bounded by a visited set
package world

import (
	"sort"

	"github.com/harper/lorekeeper/internal/models"
)

// WorldState is the full persistent set of campaign entities. Keys are
// entity ids (slugs); insertion order is irrelevant.
type WorldState struct {
	Locations map[string]models.Location
	Factions  map[string]models.Faction
	NPCs      map[string]models.NPC
}

// NewWorldState creates an empty world.
func NewWorldState() *WorldState {
	return &WorldState{
		Locations: make(map[string]models.Location),
		Factions:  make(map[string]models.Faction),
		NPCs:      make(map[string]models.NPC),
	}
}

// ChildrenOf returns the locations whose parent is parentID, sorted by id.
func (ws *WorldState) ChildrenOf(parentID string) []models.Location {
	var out []models.Location
	for _, loc := range ws.Locations {
		if loc.ParentLocation == parentID {
			out = append(out, loc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AncestryOf walks parent links from the given location upward and returns
// the chain starting at the location itself, nearest first. Parent links
// may be dangling or cyclic: a dangling parent ends the chain as if the
// last resolved location were a root, and a visited set stops cycles from
// looping forever. An unknown id yields an empty chain.
func (ws *WorldState) AncestryOf(locationID string) []models.Location {
	current, ok := ws.Locations[locationID]
	if !ok {
		return nil
	}

	visited := map[string]bool{locationID: true}
	out := []models.Location{current}
	for current.ParentLocation != "" {
		parent, ok := ws.Locations[current.ParentLocation]
		if !ok || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		out = append(out, parent)
		current = parent
	}
	return out
}

// DeleteLocation removes a location by id. Children keep their (now
// dangling) parent reference; readers treat it as a root.
func (ws *WorldState) DeleteLocation(id string) bool {
	if _, ok := ws.Locations[id]; !ok {
		return false
	}
	delete(ws.Locations, id)
	return true
}

// DeleteFaction removes a faction by id.
func (ws *WorldState) DeleteFaction(id string) bool {
	if _, ok := ws.Factions[id]; !ok {
		return false
	}
	delete(ws.Factions, id)
	return true
}

// DeleteNPC removes an NPC by id.
func (ws *WorldState) DeleteNPC(id string) bool {
	if _, ok := ws.NPCs[id]; !ok {
		return false
	}
	delete(ws.NPCs, id)
	return true
}
