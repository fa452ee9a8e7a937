package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Add or replace a layout from a file",
	Long: `Validate the layout in a JSON or YAML file and save it.

A layout with an existing id replaces it in place. Saving a template id
stores your own copy, which then takes precedence over the template.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		l, err := readLayoutFile(a.fs, args[0])
		if err != nil {
			return err
		}

		if err := a.eng.SaveLayout(l); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(l)
		}
		PrintSuccess(fmt.Sprintf("Saved layout %s (%s)", l.ID, PrintCount(l.ZoneCount(), "zone", "zones")))
		return nil
	},
}
