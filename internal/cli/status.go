package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusSpace string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current layout and zone",
	Long: `Display the selected layout and zone.

With --space <output>:<workspace> and per-space mode enabled, shows the
selection of that monitor workspace instead of the global one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		key, err := parseSpace(statusSpace)
		if err != nil {
			return err
		}

		st, err := a.eng.Status(key)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(st)
		}

		PrintSection("Status")
		PrintLabelValue("Space", st.SpaceKey.String())
		PrintLabelValue("Per-space", fmt.Sprintf("%v", a.eng.PerSpace()))
		PrintLabelValue("Layout", fmt.Sprintf("%s (%s)", st.Layout.ID, st.Layout.Name))
		PrintLabelValue("Zone", fmt.Sprintf("%d/%d %s", st.ZoneIndex+1, st.Layout.ZoneCount(), st.Zone.Name))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusSpace, "space", "", "Space key <output>:<workspace>")
}
