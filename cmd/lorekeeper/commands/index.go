// ABOUTME: CLI command to build the rulebook index
// ABOUTME: Loads extracted documents from the library and embeds their chunks
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/lorekeeper/internal/library"
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the rulebook search index",
		Long: `Build the semantic search index from extracted rulebook documents.

Reads every .json document from the library directory, chunks the pages,
embeds the chunks, and stores them in the configured vector backend.
Building is skipped when the index already has content.

Examples:
  lorekeeper index
  LOREKEEPER_LIBRARY_DIR=./books lorekeeper index`,
		Args: cobra.NoArgs,
		RunE: runIndex,
	}

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	docs, err := library.LoadDir(cfg.LibraryDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found in %s", cfg.LibraryDir)
	}

	rules, closeStore, err := openRulesIndex(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if verbose {
		for _, doc := range docs {
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %s (%d pages, %d TOC entries)\n",
				doc.Name, len(doc.Pages), len(doc.TOC))
		}
	}

	if err := rules.Build(cmd.Context(), docs); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d document(s)\n", len(docs))
	}
	return nil
}
