package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load layouts from a bundle file",
	Long: `Save every valid layout from a JSON or YAML bundle.

Layouts with existing ids are replaced. Invalid entries are skipped and
reported. The bundle's order is placed ahead of the current order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.bundles.Import(path, a.eng)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(res)
		}

		PrintSuccess(fmt.Sprintf("Imported %s from %s", PrintCount(len(res.Imported), "layout", "layouts"), path))
		if len(res.Rejected) > 0 {
			PrintWarning(fmt.Sprintf("Skipped %s:", PrintCount(len(res.Rejected), "entry", "entries")))
			items := make([]string, 0, len(res.Rejected))
			for _, r := range res.Rejected {
				label := r.ID
				if label == "" {
					label = fmt.Sprintf("#%d", r.Index)
				}
				items = append(items, fmt.Sprintf("%s: %s", label, r.Result.Reason))
			}
			PrintList(items, 1)
		}
		return nil
	},
}
