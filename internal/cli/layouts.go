package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
	"github.com/hamiltonia/zoned-sub004/internal/persist"
)

var layoutsYAML bool

var layoutsCmd = &cobra.Command{
	Use:     "layouts",
	Aliases: []string{"ls"},
	Short:   "List all layouts",
	Long:    `Display every layout, templates and your own, in the configured order.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		all := a.eng.AllLayoutsOrdered()
		if jsonOutput || layoutsYAML {
			b := &persist.Bundle{Layouts: all, LayoutOrder: a.eng.LayoutOrder()}
			if layoutsYAML {
				return outputYAML(b)
			}
			return outputJSON(b)
		}

		if len(all) == 0 {
			PrintSection("Layouts")
			PrintEmptyState("No layouts found")
			return nil
		}

		current := ""
		if l, err := a.eng.CurrentLayout(""); err == nil {
			current = l.ID
		}

		PrintSection(fmt.Sprintf("Layouts (%s)", PrintCount(len(all), "layout", "layouts")))
		rows := make([][]string, 0, len(all))
		for _, l := range all {
			marker := ""
			if l.ID == current {
				marker = "*"
			}
			rows = append(rows, []string{marker, l.ID, l.Name, strconv.Itoa(l.ZoneCount()), layoutSource(a, l)})
		}
		PrintTable([]string{"", "ID", "NAME", "ZONES", "SOURCE"}, rows)
		return nil
	},
}

// layoutSource labels where a layout comes from.
func layoutSource(a *app, l layout.Layout) string {
	if a.eng.Catalog() != nil && a.eng.Catalog().Has(l.ID) {
		return "template"
	}
	return "user"
}

func init() {
	layoutsCmd.Flags().BoolVar(&layoutsYAML, "yaml", false, "Output in YAML format")
}
