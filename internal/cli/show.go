package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamiltonia/zoned-sub004/internal/layout"
)

var showCmd = &cobra.Command{
	Use:   "show [layout-id]",
	Short: "Show layout details",
	Long:  `Display a layout and its zones. Without an id, shows the current layout.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		var l *layout.Layout
		if len(args) == 0 {
			l, err = a.eng.CurrentLayout("")
			if err != nil {
				return err
			}
		} else {
			var ok bool
			if l, ok = a.eng.Layout(args[0]); !ok {
				return notFound(a.eng, args[0])
			}
		}

		if jsonOutput {
			return outputJSON(l)
		}
		printLayout(l, -1)
		return nil
	},
}

// printLayout prints l with its zones. The zone at current is marked.
func printLayout(l *layout.Layout, current int) {
	PrintSection(fmt.Sprintf("Layout %s", l.ID))
	PrintLabelValue("Name", l.Name)
	if l.Padding != nil {
		PrintLabelValue("Padding", fmt.Sprintf("%gpx", *l.Padding))
	}
	if l.Shortcut != "" {
		PrintLabelValue("Shortcut", l.Shortcut)
	}
	fmt.Println()

	rows := make([][]string, 0, len(l.Zones))
	for i, z := range l.Zones {
		marker := ""
		if i == current {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%d", i),
			z.Name,
			fmt.Sprintf("%.3f", z.X),
			fmt.Sprintf("%.3f", z.Y),
			fmt.Sprintf("%.3f", z.W),
			fmt.Sprintf("%.3f", z.H),
		})
	}
	PrintTable([]string{"", "#", "ZONE", "X", "Y", "W", "H"}, rows)
}
