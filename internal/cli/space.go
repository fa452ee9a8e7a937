package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hamiltonia/zoned-sub004/internal/state"
)

var spaceCmd = &cobra.Command{
	Use:   "space [<output> <workspace>]",
	Short: "Show the selection of a monitor workspace",
	Long: `Display the layout and zone remembered for one monitor workspace.

A workspace seen for the first time starts on the configured default layout.
Without arguments, lists every space with remembered state.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 0 {
			return listSpaces(a)
		}

		ws, err := strconv.Atoi(args[1])
		if err != nil || ws < 0 {
			return fmt.Errorf("invalid workspace %q", args[1])
		}
		key := state.MakeKey(args[0], ws)

		st := a.eng.Spaces().GetState(key)
		if jsonOutput {
			return outputJSON(map[string]interface{}{"space_key": key, "state": st})
		}

		PrintSection(fmt.Sprintf("Space %s", key))
		if st.LayoutID == "" {
			PrintEmptyState("No layouts available")
			return nil
		}
		PrintLabelValue("Layout", st.LayoutID)
		PrintLabelValue("Zone", strconv.Itoa(st.ZoneIndex))
		if !a.eng.PerSpace() {
			PrintWarning("Per-space mode is disabled; selection commands use the global state")
		}
		return nil
	},
}

func listSpaces(a *app) error {
	keys := a.eng.Spaces().Keys()
	if jsonOutput {
		out := make(map[state.SpaceKey]state.SpaceState, len(keys))
		for _, k := range keys {
			out[k] = a.eng.Spaces().GetState(k)
		}
		return outputJSON(out)
	}

	PrintSection("Spaces")
	if len(keys) == 0 {
		PrintEmptyState("No spaces recorded")
		return nil
	}
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		st := a.eng.Spaces().GetState(k)
		rows = append(rows, []string{k.String(), st.LayoutID, strconv.Itoa(st.ZoneIndex)})
	}
	PrintTable([]string{"SPACE", "LAYOUT", "ZONE"}, rows)
	return nil
}
