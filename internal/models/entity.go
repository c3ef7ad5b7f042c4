// ABOUTME: Campaign entity models - locations, factions, and NPCs
// ABOUTME: Entity ids are slugs of their names; reference fields hold slugs of other entities
package models

// Location is a place in the campaign world. Locations may nest via
// ParentLocation, but the links are not validated into a tree: parents may
// be dangling (not yet extracted) or even cyclic, and readers must bound
// their traversal.
type Location struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	ParentLocation string `json:"parent_location"`
	Region         string `json:"region"`
}

// DefaultLocationType is assigned to locations inserted without a type.
const DefaultLocationType = "Location"

// Faction is an organization or group: a gang, corp, nomad pack, cult.
type Faction struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// DefaultFactionType is assigned to factions inserted without a type.
const DefaultFactionType = "gang"

// NPC is a non-player character. Affiliation references a Faction id,
// HomeLocation and CurrentLocation reference Location ids. All three are
// soft references: nothing guarantees the target exists at write time.
type NPC struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Role            string `json:"role"`
	Affiliation     string `json:"affiliation"`
	HomeLocation    string `json:"home_location"`
	CurrentLocation string `json:"current_location"`
	Notes           string `json:"notes"`
}

// DefaultNPCRole is assigned to NPCs inserted without a role.
const DefaultNPCRole = "NPC"
