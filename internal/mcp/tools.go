// ABOUTME: MCP tool definitions and registration for the lorekeeper server
// ABOUTME: Exposes rules search/answering and world state lookups as 4 tools
package mcp

import (
	"github.com/harper/lorekeeper/internal/index"
	"github.com/harper/lorekeeper/internal/world"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, rules *index.RulesIndex, worldStore *world.Store, topK int, temperature float32) *Handlers {
	handlers := &Handlers{
		rules:       rules,
		worldStore:  worldStore,
		topK:        topK,
		temperature: temperature,
	}

	// 1. search_rules - semantic search over indexed rulebooks
	server.AddTool(mcp.Tool{
		Name:        "search_rules",
		Description: "Search the indexed rulebooks semantically. Returns the most relevant passages with page and chapter citations.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural language rules question or topic",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of passages to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchRules)

	// 2. ask_rules - grounded answer with citations
	server.AddTool(mcp.Tool{
		Name:        "ask_rules",
		Description: "Answer a rules question using the indexed rulebooks. The answer cites source document, page, and chapter for each claim.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Rules question to answer",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskRules)

	// 3. list_entities - enumerate world state entities of one kind
	server.AddTool(mcp.Tool{
		Name:        "list_entities",
		Description: "List entities of one kind from the campaign world state.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Entity kind: location, npc, or faction",
					"enum":        []string{"location", "npc", "faction"},
				},
			},
			Required: []string{"kind"},
		},
	}, handlers.ListEntities)

	// 4. get_entity - fetch one entity by its ID
	server.AddTool(mcp.Tool{
		Name:        "get_entity",
		Description: "Get one world state entity by ID. Locations include their children and ancestry chain.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Entity kind: location, npc, or faction",
					"enum":        []string{"location", "npc", "faction"},
				},
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Entity ID (the slugged name, e.g. the_rusty_anchor)",
				},
			},
			Required: []string{"kind", "id"},
		},
	}, handlers.GetEntity)

	return handlers
}
