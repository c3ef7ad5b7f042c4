// ABOUTME: CLI command to inspect stored chunks for one page
// ABOUTME: Debugging aid for chunking and chapter attribution
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <document> <page>",
		Short: "Show the stored chunks for one rulebook page",
		Long: `Show every indexed chunk for one page of a document.

Useful for checking what the chunker produced and which chapter a page
was attributed to.

Examples:
  lorekeeper inspect core_rules 42
  lorekeeper inspect --format json core_rules 42`,
		Args: cobra.ExactArgs(2),
		RunE: runInspect,
	}

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	var page int
	if _, err := fmt.Sscanf(args[1], "%d", &page); err != nil {
		return fmt.Errorf("page must be a number, got %q", args[1])
	}
	if err := validatePositiveInt(page, "page"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openVectorStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	chunks, err := store.FilterByPage(args[0], page)
	if err != nil {
		return fmt.Errorf("loading chunks: %w", err)
	}

	if len(chunks) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No chunks stored for %s page %d\n", args[0], page)
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, chunks)
	}

	for i, c := range chunks {
		fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s (chapter: %s)\n%s\n\n", i+1, c.ID, c.Chapter, c.Text)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d chunk(s) on %s page %d\n", len(chunks), args[0], page)
	}
	return nil
}
