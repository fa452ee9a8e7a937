package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/persist"
)

var exportUserOnly bool

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write layouts to a bundle file",
	Long: `Write layouts and the custom order to a JSON or YAML bundle.

The format follows the file extension (.yaml/.yml for YAML). Use
--user-only to skip layouts whose ids belong to the built-in templates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		var out []layout.Layout
		for _, l := range a.eng.AllLayoutsOrdered() {
			if exportUserOnly && a.eng.Catalog().Has(l.ID) {
				continue
			}
			out = append(out, l)
		}

		b := &persist.Bundle{Layouts: out, LayoutOrder: a.eng.LayoutOrder()}
		if err := a.bundles.Export(path, b); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]interface{}{"path": path, "layouts": len(out)})
		}
		PrintSuccess(fmt.Sprintf("Exported %s to %s", PrintCount(len(out), "layout", "layouts"), path))
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportUserOnly, "user-only", false, "Skip built-in template ids")
}
