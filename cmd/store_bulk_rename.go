package cmd

import (
	"fmt"

	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/utils"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
)

var bulkRenameForce bool

func init() {
	bulkRenameCmd.Flags().BoolVarP(&bulkRenameForce, "force", "f", false, "apply without asking")
}

var bulkRenameCmd = &cobra.Command{
	Use:   "bulk-rename",
	Short: "Rename many entries in the store's editor",
	Long: `Opens the index in the password store's editor. Every line whose path
was changed is applied as a move once confirmed. Removed lines are
ignored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting bulk-rename command")
		ctx := cmd.Context()

		env, err := loadEnv()
		if err != nil {
			return err
		}

		renames, err := workflows.PlanBulkRename(ctx, env)
		if err != nil {
			return err
		}
		if len(renames) == 0 {
			fmt.Println(ui.Muted.Sprint("no paths changed"))
			return nil
		}

		fmt.Println("Renames:")
		for _, r := range renames {
			fmt.Printf("  %s -> %s\n", ui.Path.Sprint(r.From), ui.Path.Sprint(r.To))
		}

		if !bulkRenameForce {
			ok, err := utils.Confirm(fmt.Sprintf("Apply %d rename(s)?", len(renames)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(ui.Muted.Sprint("nothing renamed"))
				return nil
			}
		}

		if err := workflows.BulkRename(ctx, env, renames); err != nil {
			return err
		}

		fmt.Println(succeeded("Renamed %d entries", len(renames)))
		return nil
	},
}

func resetMaintenanceCommandState() {
	initForce = false
	initInclude = ""
	initDryRun = false
	fixIndexPrefer = ""
	fixIndexDryRun = false
	bulkRenameForce = false
}
