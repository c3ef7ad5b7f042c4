// ABOUTME: CLI command to process a session transcript into the world state
// ABOUTME: Splits, extracts entity deltas, merges, and writes a dated recap
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/lorekeeper/internal/chunker"
	"github.com/harper/lorekeeper/internal/session"
	"github.com/harper/lorekeeper/internal/world"
)

// NewSessionCmd creates the session command
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session <transcript>",
		Short: "Process a session transcript into the world state",
		Long: `Process a play session transcript.

The transcript is split into token-bounded chunks; each chunk is sent to
the chat model to extract new or changed locations, NPCs, and factions,
which are merged into the persistent world state in transcript order.
A dated session recap is written to the summaries directory.

Examples:
  lorekeeper session ./transcripts/session_12.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runSession,
	}

	return cmd
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newLLMClient(cfg)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("OPENAI_API_KEY is required for session processing")
	}

	counter, err := chunker.NewTiktokenCounter()
	if err != nil {
		return fmt.Errorf("initializing tokenizer: %w", err)
	}

	store := openWorldStore(cfg)
	state, err := store.Load()
	if err != nil {
		return err
	}

	proc := session.NewProcessor(client, client, counter,
		world.NewMerger(state, store), cfg.SummariesDir, cfg.ChunkTokens)

	result, err := proc.Process(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Processed %d chunk(s)", result.Chunks)
		if result.Failed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (%d failed)", result.Failed)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		if result.SummaryPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Recap written to %s\n", result.SummaryPath)
		}
	}
	if verbose && result.Recap != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", result.Recap)
	}
	return nil
}
