// ABOUTME: CLI command to answer rules questions from the index
// ABOUTME: Retrieves top passages and generates a grounded, cited answer
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askLimit int
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a rules question from the indexed rulebooks",
		Long: `Answer a rules question using the indexed rulebooks.

Retrieves the most relevant passages and asks the chat model to answer
using only those passages, citing source, page, and chapter.

Examples:
  lorekeeper ask "how does concentration work?"
  lorekeeper ask --limit 8 "can I two-weapon fight with a shield?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askLimit, "limit", 5, "Passages to retrieve for grounding")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(askLimit, "limit"); err != nil {
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

	answer, err := rules.Answer(cmd.Context(), args[0], askLimit, cfg.AnswerTemperature)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
