package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cycleSpace string

var cycleCmd = &cobra.Command{
	Use:   "cycle <next|prev|N>",
	Short: "Move to another zone",
	Long: `Move the current zone forward or backward, wrapping at both ends.

N is a signed step count: "cycle 2" skips one zone and "cycle -- -1" equals
"cycle prev".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		direction, err := parseDirection(args[0])
		if err != nil {
			return err
		}

		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		key, err := parseSpace(cycleSpace)
		if err != nil {
			return err
		}

		zone, err := a.eng.CycleZone(direction, key)
		if err != nil {
			return err
		}
		idx := a.eng.CurrentZoneIndex(key)

		if jsonOutput {
			return outputJSON(map[string]interface{}{"zone_index": idx, "zone": zone})
		}
		PrintSuccess(fmt.Sprintf("Zone %d: %s", idx, zone.Name))
		return nil
	},
}

// parseDirection maps next, prev or a signed integer to a step.
func parseDirection(arg string) (int, error) {
	switch arg {
	case "next":
		return 1, nil
	case "prev", "previous":
		return -1, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid direction %q: want next, prev or an integer", arg)
	}
	return n, nil
}

func init() {
	cycleCmd.Flags().StringVar(&cycleSpace, "space", "", "Space key <output>:<workspace>")
}
