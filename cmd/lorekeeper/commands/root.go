// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all lorekeeper subcommands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██╗      ██████╗ ██████╗ ███████╗██╗  ██╗███████╗███████╗██████╗ ███████╗██████╗
██║     ██╔═══██╗██╔══██╗██╔════╝██║ ██╔╝██╔════╝██╔════╝██╔══██╗██╔════╝██╔══██╗
██║     ██║   ██║██████╔╝█████╗  █████╔╝ █████╗  █████╗  ██████╔╝█████╗  ██████╔╝
██║     ██║   ██║██╔══██╗██╔══╝  ██╔═██╗ ██╔══╝  ██╔══╝  ██╔═══╝ ██╔══╝  ██╔══██╗
███████╗╚██████╔╝██║  ██║███████╗██║  ██╗███████╗███████╗██║     ███████╗██║  ██║
╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚══════╝╚══════╝╚═╝     ╚══════╝╚═╝  ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lorekeeper",
		Short: "Game-master assistant: rulebook search and campaign world tracking",
		Long: banner + `

Lorekeeper indexes your tabletop RPG rulebooks for semantic search and
grounded question answering, and turns session transcripts into a
persistent world state of locations, NPCs, and factions.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewIndexCmd(),
		NewSearchCmd(),
		NewAskCmd(),
		NewInspectCmd(),
		NewSessionCmd(),
		NewWorldCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
