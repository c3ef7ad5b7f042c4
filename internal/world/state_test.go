// ABOUTME: Tests for world state queries and deletes
// ABOUTME: Covers child listing, ancestry traversal with cycles and dangling parents
package world

import (
	"testing"

	"github.com/harper/lorekeeper/internal/models"
)

func seedState() *WorldState {
	ws := NewWorldState()
	ws.Locations["continent"] = models.Location{ID: "continent", Name: "Continent", Type: "Region"}
	ws.Locations["city"] = models.Location{ID: "city", Name: "City", ParentLocation: "continent"}
	ws.Locations["district"] = models.Location{ID: "district", Name: "District", ParentLocation: "city"}
	ws.Locations["tavern"] = models.Location{ID: "tavern", Name: "Tavern", ParentLocation: "district"}
	ws.Locations["temple"] = models.Location{ID: "temple", Name: "Temple", ParentLocation: "district"}
	return ws
}

func TestChildrenOf(t *testing.T) {
	ws := seedState()

	children := ws.ChildrenOf("district")
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].ID != "tavern" || children[1].ID != "temple" {
		t.Errorf("children not sorted by ID: %q, %q", children[0].ID, children[1].ID)
	}

	if got := ws.ChildrenOf("tavern"); len(got) != 0 {
		t.Errorf("leaf location should have no children, got %d", len(got))
	}
	if got := ws.ChildrenOf("no_such_place"); len(got) != 0 {
		t.Errorf("unknown parent should yield no children, got %d", len(got))
	}
}

func TestAncestryOf(t *testing.T) {
	ws := seedState()

	chain := ws.AncestryOf("tavern")
	want := []string{"tavern", "district", "city", "continent"}
	if len(chain) != len(want) {
		t.Fatalf("expected %d ancestors, got %d", len(want), len(chain))
	}
	for i, id := range want {
		if chain[i].ID != id {
			t.Errorf("chain[%d] = %q, want %q", i, chain[i].ID, id)
		}
	}
}

func TestAncestryOfUnknownLocation(t *testing.T) {
	ws := seedState()
	if chain := ws.AncestryOf("no_such_place"); len(chain) != 0 {
		t.Errorf("unknown location should yield empty chain, got %d entries", len(chain))
	}
}

func TestAncestryOfDanglingParent(t *testing.T) {
	ws := NewWorldState()
	ws.Locations["ruin"] = models.Location{ID: "ruin", Name: "Ruin", ParentLocation: "lost_empire"}

	chain := ws.AncestryOf("ruin")
	if len(chain) != 1 {
		t.Fatalf("dangling parent should end the chain, got %d entries", len(chain))
	}
	if chain[0].ID != "ruin" {
		t.Errorf("chain[0] = %q, want %q", chain[0].ID, "ruin")
	}
}

func TestAncestryOfTerminatesOnCycle(t *testing.T) {
	ws := NewWorldState()
	ws.Locations["a"] = models.Location{ID: "a", Name: "A", ParentLocation: "b"}
	ws.Locations["b"] = models.Location{ID: "b", Name: "B", ParentLocation: "a"}

	chain := ws.AncestryOf("a")
	if len(chain) != 2 {
		t.Fatalf("cycle should visit each location once, got %d entries", len(chain))
	}
}

func TestDeletes(t *testing.T) {
	ws := seedState()
	ws.Factions["guild"] = models.Faction{ID: "guild", Name: "Guild"}
	ws.NPCs["barkeep"] = models.NPC{ID: "barkeep", Name: "Barkeep"}

	if !ws.DeleteLocation("tavern") {
		t.Error("DeleteLocation returned false for existing location")
	}
	if ws.DeleteLocation("tavern") {
		t.Error("DeleteLocation returned true for already-deleted location")
	}
	if !ws.DeleteFaction("guild") {
		t.Error("DeleteFaction returned false for existing faction")
	}
	if !ws.DeleteNPC("barkeep") {
		t.Error("DeleteNPC returned false for existing NPC")
	}
	if ws.DeleteNPC("nobody") {
		t.Error("DeleteNPC returned true for unknown NPC")
	}
}
