package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in layouts",
	Long: `Replace all layouts with the built-in templates.

Your own layouts and the custom order are removed. The layouts file is
backed up first. You'll be prompted to confirm unless --force is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce && !jsonOutput {
			PrintWarning("This removes every custom layout.")
			fmt.Print("Continue? [y/N] ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				PrintInfo("Aborted")
				return nil
			}
		}

		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.eng.ResetToDefaults(); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]interface{}{"layouts": a.eng.LayoutOrder()})
		}
		PrintSuccess(fmt.Sprintf("Restored %s", PrintCount(len(a.eng.AllLayouts()), "layout", "layouts")))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation")
}
