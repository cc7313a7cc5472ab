package cmd

import (
	"fmt"

	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	getShowPassword bool
	getClip         bool
)

func init() {
	addSelectionFlags(getCmd)
	getCmd.Flags().BoolVar(&getShowPassword, "password", false, "show the password")
	getCmd.Flags().BoolVarP(&getClip, "clip", "c", false, "copy the password to the clipboard")
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show an entry",
	Long: `Prints an entry selected by path or identifier. The password is hidden
unless --password is given; --clip copies it to the clipboard instead.

Examples:
  rpass get -p web/mail
  rpass get -i 0f8fad5b-d9cb-469f-a165-70867728950e --password
  rpass get -p bank --clip`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting get command")
		ctx := cmd.Context()

		env, err := loadEnv()
		if err != nil {
			return err
		}

		sel, err := selection(ctx, env)
		if err != nil {
			return err
		}

		result, err := workflows.Get(ctx, env, workflows.GetOptions{Selection: sel})
		if err != nil {
			return err
		}

		if getClip {
			Logger.Debugf("Copying password of %s", result.Entry.ID)
			if err := clipboard.WriteAll(result.Entry.Password); err != nil {
				return Logger.ErrorfAndReturn("failed to copy to clipboard: %v", err)
			}
			fmt.Println(succeeded("Copied the password of %s to the clipboard", ui.Path.Sprint(result.Entry.PathOrEmpty())))
			return nil
		}

		fmt.Print(result.Entry.Format(getShowPassword))
		return nil
	},
}
