package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <layout-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a layout",
	Long: `Remove a layout from your layouts file.

Deleting your copy of a template restores the template. If the deleted
layout was selected, the first remaining layout becomes current.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.eng.DeleteLayout(id); err != nil {
			return withSuggestions(a.eng, id, err)
		}

		if jsonOutput {
			return outputJSON(map[string]string{"deleted": id})
		}
		PrintSuccess(fmt.Sprintf("Deleted layout %s", id))
		return nil
	},
}
