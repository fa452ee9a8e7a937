package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply template changes to your layouts",
	Long: `Bring the layouts file up to the installed template catalog.

Migration also runs on every command when the catalog is newer; this
command reports what it did. Use --dry-run to preview without writing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateDryRun {
			return previewMigration()
		}

		a, err := newEngine()
		if err != nil {
			return err
		}
		defer a.Close()

		res := a.eng.LastMigration()
		if jsonOutput {
			return outputJSON(res)
		}
		if res == nil {
			PrintInfo(fmt.Sprintf("Layouts are up to date (templates v%d)", a.eng.InstalledVersion()))
			return nil
		}

		PrintSuccess(fmt.Sprintf("Migrated templates v%d → v%d", res.FromVersion, res.ToVersion))
		printIDs("Kept", res.Kept)
		printIDs("Added", res.Added)
		printIDs("Dropped", res.Dropped)
		return nil
	},
}

func previewMigration() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	plan, err := a.eng.PlanMigration()
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(plan)
	}
	if plan == nil {
		PrintInfo("No migration pending")
		return nil
	}

	PrintSection(fmt.Sprintf("Migration plan v%d → v%d", plan.FromVersion, plan.ToVersion))
	rows := make([][]string, 0, len(plan.Operations))
	for _, op := range plan.Operations {
		rows = append(rows, []string{op.Type, op.LayoutID, op.Reason})
	}
	if len(rows) == 0 {
		PrintEmptyState("No changes")
		return nil
	}
	PrintTable([]string{"OPERATION", "LAYOUT", "REASON"}, rows)
	return nil
}

func printIDs(label string, ids []string) {
	if len(ids) == 0 {
		return
	}
	PrintSubsection(fmt.Sprintf("%s (%d)", label, len(ids)))
	PrintList(ids, 2)
}
