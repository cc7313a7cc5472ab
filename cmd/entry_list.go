package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [pattern]",
	Short: "List entries as a tree",
	Long: `Prints the indexed entries as a tree. An optional glob keeps the paths
it matches and everything below a matching directory; ** crosses
directories.

Examples:
  rpass ls
  rpass ls 'web/*'
  rpass ls '**/mail'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting ls command")

		env, err := loadEnv()
		if err != nil {
			return err
		}

		opts := workflows.ListOptions{}
		if len(args) == 1 {
			opts.Pattern = args[0]
		}

		result, err := workflows.List(cmd.Context(), env, opts)
		if err != nil {
			return err
		}

		if len(result.Entries) == 0 {
			fmt.Println(ui.Muted.Sprint("no entries"))
			return nil
		}

		Logger.Debugf("Listing %d entries", len(result.Entries))
		return result.Tree.Render(os.Stdout)
	},
}

func resetEntryCommandState() {
	resetSelectionState()
	insertUsername = ""
	insertURL = ""
	getShowPassword = false
	getClip = false
	rmForce = false
}
