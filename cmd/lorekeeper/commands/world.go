// ABOUTME: CLI commands for querying and editing the campaign world state
// ABOUTME: list/show/children/ancestry/delete over locations, NPCs, and factions
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/lorekeeper/internal/world"
)

// NewWorldCmd creates the world command group
func NewWorldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "world",
		Short: "Query and edit the campaign world state",
		Long: `Query and edit the persistent world state built from session
transcripts. Entities are addressed by ID: the lowercased name with
non-alphanumeric runs collapsed to underscores (e.g. "The Rusty Anchor"
is the_rusty_anchor).`,
	}

	cmd.AddCommand(
		newWorldListCmd(),
		newWorldShowCmd(),
		newWorldChildrenCmd(),
		newWorldAncestryCmd(),
		newWorldDeleteCmd(),
	)

	return cmd
}

func newWorldListCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list <kind>",
		Short:     "List entities of one kind",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"location", "npc", "faction"},
		RunE:      runWorldList,
	}
}

func newWorldShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show one entity",
		Args:  cobra.ExactArgs(2),
		RunE:  runWorldShow,
	}
}

func newWorldChildrenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "children <location-id>",
		Short: "List a location's direct children",
		Args:  cobra.ExactArgs(1),
		RunE:  runWorldChildren,
	}
}

func newWorldAncestryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ancestry <location-id>",
		Short: "Show a location's chain of containing locations",
		Args:  cobra.ExactArgs(1),
		RunE:  runWorldAncestry,
	}
}

func newWorldDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete one entity",
		Args:  cobra.ExactArgs(2),
		RunE:  runWorldDelete,
	}
}

func loadWorld() (*world.Store, *world.WorldState, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store := openWorldStore(cfg)
	state, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return store, state, nil
}

func runWorldList(cmd *cobra.Command, args []string) error {
	_, state, err := loadWorld()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	switch args[0] {
	case "location":
		if outputFormat == "json" {
			return printJSON(cmd, state.Locations)
		}
		fmt.Fprintf(w, "ID\tNAME\tTYPE\tPARENT\tREGION\n")
		for _, id := range sortedKeys(state.Locations) {
			loc := state.Locations[id]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", loc.ID, loc.Name, loc.Type, loc.ParentLocation, loc.Region)
		}
	case "npc":
		if outputFormat == "json" {
			return printJSON(cmd, state.NPCs)
		}
		fmt.Fprintf(w, "ID\tNAME\tROLE\tFACTION\tLOCATION\n")
		for _, id := range sortedKeys(state.NPCs) {
			npc := state.NPCs[id]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", npc.ID, npc.Name, npc.Role, npc.Affiliation, npc.CurrentLocation)
		}
	case "faction":
		if outputFormat == "json" {
			return printJSON(cmd, state.Factions)
		}
		fmt.Fprintf(w, "ID\tNAME\tTYPE\tDESCRIPTION\n")
		for _, id := range sortedKeys(state.Factions) {
			fac := state.Factions[id]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", fac.ID, fac.Name, fac.Type, truncate(fac.Description, 50))
		}
	default:
		return fmt.Errorf("unknown entity kind %q (want location, npc, or faction)", args[0])
	}
	w.Flush()
	return nil
}

func runWorldShow(cmd *cobra.Command, args []string) error {
	_, state, err := loadWorld()
	if err != nil {
		return err
	}

	kind, id := args[0], args[1]
	switch kind {
	case "location":
		loc, ok := state.Locations[id]
		if !ok {
			return fmt.Errorf("no location with ID %q", id)
		}
		return printJSON(cmd, loc)
	case "npc":
		npc, ok := state.NPCs[id]
		if !ok {
			return fmt.Errorf("no NPC with ID %q", id)
		}
		return printJSON(cmd, npc)
	case "faction":
		fac, ok := state.Factions[id]
		if !ok {
			return fmt.Errorf("no faction with ID %q", id)
		}
		return printJSON(cmd, fac)
	default:
		return fmt.Errorf("unknown entity kind %q (want location, npc, or faction)", kind)
	}
}

func runWorldChildren(cmd *cobra.Command, args []string) error {
	_, state, err := loadWorld()
	if err != nil {
		return err
	}

	children := state.ChildrenOf(args[0])
	if outputFormat == "json" {
		return printJSON(cmd, children)
	}
	if len(children) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No children for %s\n", args[0])
		}
		return nil
	}
	for _, c := range children {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID, c.Name)
	}
	return nil
}

func runWorldAncestry(cmd *cobra.Command, args []string) error {
	_, state, err := loadWorld()
	if err != nil {
		return err
	}

	chain := state.AncestryOf(args[0])
	if len(chain) == 0 {
		return fmt.Errorf("no location with ID %q", args[0])
	}
	if outputFormat == "json" {
		return printJSON(cmd, chain)
	}
	for i, loc := range chain {
		fmt.Fprintf(cmd.OutOrStdout(), "%*s%s (%s)\n", i*2, "", loc.Name, loc.ID)
	}
	return nil
}

func runWorldDelete(cmd *cobra.Command, args []string) error {
	store, state, err := loadWorld()
	if err != nil {
		return err
	}

	kind, id := args[0], args[1]
	var deleted bool
	switch kind {
	case "location":
		deleted = state.DeleteLocation(id)
	case "npc":
		deleted = state.DeleteNPC(id)
	case "faction":
		deleted = state.DeleteFaction(id)
	default:
		return fmt.Errorf("unknown entity kind %q (want location, npc, or faction)", kind)
	}
	if !deleted {
		return fmt.Errorf("no %s with ID %q", kind, id)
	}

	if err := store.Save(state); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", kind, id)
	}
	return nil
}
