package cli

import (
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order [layout-id...]",
	Short: "Show or set the layout order",
	Long: `Without arguments, prints the layout order used by pickers and cycling.

With ids, stores them as the custom order. Unknown ids are dropped and
layouts not named keep their relative order after the ones given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) > 0 {
			if err := a.eng.SetLayoutOrder(args); err != nil {
				return err
			}
		}

		ids := make([]string, 0)
		for _, l := range a.eng.AllLayoutsOrdered() {
			ids = append(ids, l.ID)
		}

		if jsonOutput {
			return outputJSON(ids)
		}
		if len(args) > 0 {
			PrintSuccess("Layout order updated")
		}
		PrintNumberedList(ids, 1)
		return nil
	},
}
