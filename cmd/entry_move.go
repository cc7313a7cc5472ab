package cmd

import (
	"fmt"

	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/utils"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
)

var rmForce bool

func init() {
	addSelectionFlags(mvCmd)
	addSelectionFlags(rmCmd)
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "delete without asking")
}

var mvCmd = &cobra.Command{
	Use:   "mv <destination>",
	Short: "Move an entry to a new path",
	Long: `Rewrites the path of an entry and moves it in the index. The encrypted
record keeps its identifier.

Examples:
  rpass mv -p web/mail mail/personal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting mv command")
		ctx := cmd.Context()

		env, err := loadEnv()
		if err != nil {
			return err
		}

		sel, err := selection(ctx, env)
		if err != nil {
			return err
		}

		result, err := workflows.Move(ctx, env, workflows.MoveOptions{Selection: sel, Destination: args[0]})
		if err != nil {
			return err
		}

		if !result.Moved {
			fmt.Println(succeeded("%s is already at that path", ui.Path.Sprint(result.From)))
			return nil
		}
		fmt.Println(succeeded("Moved %s to %s", ui.Path.Sprint(result.From), ui.Path.Sprint(result.Entry.PathOrEmpty())))
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete an entry",
	Long: `Deletes the encrypted record of an entry and removes it from the index.
Asks for confirmation unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rm command")
		ctx := cmd.Context()

		env, err := loadEnv()
		if err != nil {
			return err
		}

		sel, err := selection(ctx, env)
		if err != nil {
			return err
		}

		_, entryPath, err := env.Resolve(ctx, sel)
		if err != nil {
			return err
		}

		if !rmForce {
			ok, err := utils.Confirm(fmt.Sprintf("Delete %s?", entryPath))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(ui.Muted.Sprint("nothing deleted"))
				return nil
			}
		}

		result, err := workflows.Delete(ctx, env, workflows.DeleteOptions{Selection: sel})
		if err != nil {
			return err
		}

		fmt.Println(succeeded("Deleted %s %s", ui.Path.Sprint(result.Path), ui.Muted.Sprint(result.ID)))
		return nil
	},
}
