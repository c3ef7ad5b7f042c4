// ABOUTME: MCP tool handler implementations for the lorekeeper server
// ABOUTME: World state is reloaded per request so session imports show up without a restart
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/harper/lorekeeper/internal/index"
	"github.com/harper/lorekeeper/internal/world"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	rules       *index.RulesIndex
	worldStore  *world.Store
	topK        int
	temperature float32
}

// SearchRules handles the search_rules tool
func (h *Handlers) SearchRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", h.topK)

	results, err := h.rules.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rules search failed: %v", err)), nil
	}

	passages := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		passages = append(passages, map[string]interface{}{
			"text":    r.Text,
			"score":   r.Score,
			"source":  r.SourceDocument,
			"page":    r.Page,
			"chapter": r.Chapter,
		})
	}

	return marshalResult(map[string]interface{}{"passages": passages})
}

// AskRules handles the ask_rules tool
func (h *Handlers) AskRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.rules.Answer(ctx, question, h.topK, h.temperature)
	if errors.Is(err, index.ErrAnswererNotConfigured) {
		return mcp.NewToolResultError("answering is not configured on this server (no chat backend)"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	return marshalResult(map[string]interface{}{"answer": answer})
}

// ListEntities handles the list_entities tool
func (h *Handlers) ListEntities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind argument is required and must be a string"), nil
	}

	state, err := h.worldStore.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load world state: %v", err)), nil
	}

	var entities interface{}
	switch kind {
	case "location":
		entities = sortedValues(state.Locations)
	case "npc":
		entities = sortedValues(state.NPCs)
	case "faction":
		entities = sortedValues(state.Factions)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown entity kind %q (want location, npc, or faction)", kind)), nil
	}

	return marshalResult(map[string]interface{}{"kind": kind, "entities": entities})
}

// GetEntity handles the get_entity tool
func (h *Handlers) GetEntity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind argument is required and must be a string"), nil
	}
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id argument is required and must be a string"), nil
	}

	state, err := h.worldStore.Load()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load world state: %v", err)), nil
	}

	switch kind {
	case "location":
		loc, ok := state.Locations[id]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no location with ID %q", id)), nil
		}
		return marshalResult(map[string]interface{}{
			"entity":   loc,
			"children": state.ChildrenOf(id),
			"ancestry": state.AncestryOf(id),
		})
	case "npc":
		npc, ok := state.NPCs[id]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no NPC with ID %q", id)), nil
		}
		return marshalResult(map[string]interface{}{"entity": npc})
	case "faction":
		fac, ok := state.Factions[id]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no faction with ID %q", id)), nil
		}
		return marshalResult(map[string]interface{}{"entity": fac})
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown entity kind %q (want location, npc, or faction)", kind)), nil
	}
}

// sortedValues flattens an entity map into a slice ordered by ID.
func sortedValues[T any](m map[string]T) []T {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func marshalResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
