package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hamiltonia/zoned-sub004/internal/state"
)

var useSpace string

var useCmd = &cobra.Command{
	Use:   "use <layout-id>",
	Short: "Select a layout",
	Long: `Select a layout as current, starting at its first zone.

With --space <output>:<workspace> and per-space mode enabled, selects the
layout for that monitor workspace only.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		key, err := parseSpace(useSpace)
		if err != nil {
			return err
		}

		if key.IsGlobal() || !a.eng.PerSpace() {
			err = a.eng.SetLayout(id)
		} else {
			err = a.eng.SetLayoutForSpace(key, id)
		}
		if err != nil {
			return withSuggestions(a.eng, id, err)
		}

		if jsonOutput {
			return outputJSON(map[string]string{"layout_id": id, "space_key": spaceLabel(a, key)})
		}
		PrintSuccess(fmt.Sprintf("Layout set to %s for %s", id, spaceLabel(a, key)))
		return nil
	},
}

// spaceLabel names the space an operation applied to.
func spaceLabel(a *app, key state.SpaceKey) string {
	if key.IsGlobal() || !a.eng.PerSpace() {
		return state.GlobalKey.String()
	}
	return key.String()
}

func init() {
	useCmd.Flags().StringVar(&useSpace, "space", "", "Space key <output>:<workspace>")
}
