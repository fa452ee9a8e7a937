package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var duplicateCmd = &cobra.Command{
	Use:     "duplicate <layout-id> [name]",
	Aliases: []string{"dup"},
	Short:   "Copy a layout under a new id",
	Long: `Save a copy of a layout with a generated id.

The copy is named "<name> (copy)" unless a name is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		name := ""
		if len(args) == 2 {
			name = args[1]
		}

		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		dup, err := a.eng.DuplicateLayout(id, name)
		if err != nil {
			return withSuggestions(a.eng, id, err)
		}

		if jsonOutput {
			return outputJSON(dup)
		}
		PrintSuccess(fmt.Sprintf("Created %s (%s) from %s", dup.ID, dup.Name, id))
		return nil
	},
}
