// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to search rules and query the world state via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/lorekeeper/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Lorekeeper as an MCP (Model Context Protocol) server over stdio,
exposing rulebook search/answering and world state lookups as tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  lorekeeper mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "lorekeeper": {
  #       "command": "lorekeeper",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rules, closeStore, err := openRulesIndex(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	server := mcpserver.NewMCPServer(
		"Lorekeeper",
		"0.1.0",
	)

	mcp.RegisterTools(server, rules, openWorldStore(cfg), cfg.TopK, cfg.AnswerTemperature)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Lorekeeper MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
