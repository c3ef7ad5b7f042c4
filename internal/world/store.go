// ABOUTME: JSON file persistence for the world state
// ABOUTME: Scaffolds on first run, tolerates corrupt files, and saves atomically
package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/harper/lorekeeper/internal/models"
)

// worldFile is the on-disk shape: three arrays of entity records.
type worldFile struct {
	Locations []models.Location `json:"locations"`
	Factions  []models.Faction  `json:"factions"`
	NPCs      []models.NPC      `json:"npcs"`
}

// Store persists the world state to a single JSON file. One writer process
// at a time is assumed; there is no cross-process locking.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the world state. A missing file scaffolds an empty state and
// persists it immediately, so the first run always leaves a valid file
// behind. Corrupt or unreadable JSON is logged and treated as empty rather
// than failing the load.
func (s *Store) Load() (*WorldState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		state := NewWorldState()
		if err := s.Save(state); err != nil {
			return nil, fmt.Errorf("scaffolding world state: %w", err)
		}
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading world state: %w", err)
	}

	var file worldFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("ignoring malformed world state in %s: %v", s.path, err)
		return NewWorldState(), nil
	}

	state := NewWorldState()
	for _, loc := range file.Locations {
		state.Locations[loc.ID] = loc
	}
	for _, fac := range file.Factions {
		state.Factions[fac.ID] = fac
	}
	for _, npc := range file.NPCs {
		state.NPCs[npc.ID] = npc
	}
	return state, nil
}

// Save serializes all three collections and replaces the backing file.
// The write goes to a temp file first and is renamed into place, so a
// crashed save never leaves a half-written file visible to a later Load.
func (s *Store) Save(state *WorldState) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating world state directory: %w", err)
		}
	}

	file := worldFile{
		Locations: make([]models.Location, 0, len(state.Locations)),
		Factions:  make([]models.Faction, 0, len(state.Factions)),
		NPCs:      make([]models.NPC, 0, len(state.NPCs)),
	}
	for _, loc := range state.Locations {
		file.Locations = append(file.Locations, loc)
	}
	for _, fac := range state.Factions {
		file.Factions = append(file.Factions, fac)
	}
	for _, npc := range state.NPCs {
		file.NPCs = append(file.NPCs, npc)
	}
	sort.Slice(file.Locations, func(i, j int) bool { return file.Locations[i].ID < file.Locations[j].ID })
	sort.Slice(file.Factions, func(i, j int) bool { return file.Factions[i].ID < file.Factions[j].ID })
	sort.Slice(file.NPCs, func(i, j int) bool { return file.NPCs[i].ID < file.NPCs[j].ID })

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing world state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing world state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing world state: %w", err)
	}
	return nil
}
