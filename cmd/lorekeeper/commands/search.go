// ABOUTME: CLI command to search the rulebook index
// ABOUTME: Semantic search with page and chapter citations
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the indexed rulebooks",
		Long: `Search the indexed rulebooks semantically.

Returns the most relevant passages ranked by cosine similarity, each
with its source document, page, and chapter.

Examples:
  lorekeeper search "grappling rules"
  lorekeeper search --limit 10 "opportunity attacks"
  lorekeeper search --format json "critical hits"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum passages to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rules, closeStore, err := openRulesIndex(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	results, err := rules.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("searching rules: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No passages found for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd, results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tSOURCE\tPAGE\tCHAPTER\tPASSAGE\n")
	fmt.Fprintf(w, "-----\t------\t----\t-------\t-------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%d\t%s\t%s\n",
			r.Score,
			truncate(r.SourceDocument, 20),
			r.Page,
			truncate(r.Chapter, 24),
			truncate(r.Text, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d passage(s)\n", len(results))
	}
	return nil
}
