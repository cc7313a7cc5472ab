package cmd

import (
	"fmt"

	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/utils"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	initForce   bool
	initInclude string
	initDryRun  bool
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "migrate without asking")
	initCmd.Flags().StringVar(&initInclude, "include", "", "only migrate records matching this glob")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "list the records without migrating them")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Index an existing password store",
	Long: `Moves every path-named record of an existing password store into the
identifier folder and adds it to the index. Each record keeps its name as
its path field. A store without an index gets an empty one.

Examples:
  rpass init
  rpass init --include 'web/**' --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		ctx := cmd.Context()

		env, err := loadEnv()
		if err != nil {
			return err
		}

		opts := workflows.InitOptions{Include: initInclude, DryRun: initDryRun}

		candidates, err := workflows.InitCandidates(ctx, env, opts)
		if err != nil {
			return err
		}
		Logger.Debugf("Found %d records to index", len(candidates))

		if len(candidates) > 0 && !initForce && !initDryRun {
			fmt.Printf("Records to index:\n%s\n", utils.FormatPaths(candidates))
			ok, err := utils.Confirm(fmt.Sprintf("Index %d record(s)?", len(candidates)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(ui.Muted.Sprint("nothing indexed"))
				return nil
			}
		}

		spinner, cleanup := startSpinner("Indexing the store...")
		defer cleanup()

		result, err := workflows.Init(ctx, env, opts)
		if err != nil {
			spinner.FinalMSG = failed(err)
			return err
		}

		if result.DryRun {
			spinner.FinalMSG = printInitDryRun(result)
			return nil
		}

		msg := succeeded("Indexed %d record(s)", len(result.Indexed))
		if result.CreatedIndex {
			msg += "\n  Created an empty index."
		}
		spinner.FinalMSG = msg
		return nil
	},
}

func printInitDryRun(result *workflows.InitResult) string {
	msg := ui.Warning.Sprint("[dry-run]") + " Would index:\n"
	if len(result.Indexed) == 0 {
		msg += "  No path-named records found.\n"
	}
	for _, p := range result.Indexed {
		msg += "  - " + ui.Path.Sprint(p.Path) + "\n"
	}
	if result.CreatedIndex {
		msg += "  - create an empty index\n"
	}
	return msg + ui.Info.Sprint("No changes made.")
}
