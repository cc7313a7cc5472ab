package cmd

import (
	"fmt"

	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
)

func init() {
	addSelectionFlags(editCmd)
	addSelectionFlags(passwdCmd)
	addPasswordFlags(passwdCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit an entry in the store's editor",
	Long: `Opens an entry in the password store's editor. Changing the path line
moves the entry in the index.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting edit command")
		ctx := cmd.Context()

		env, err := loadEnv()
		if err != nil {
			return err
		}

		sel, err := selection(ctx, env)
		if err != nil {
			return err
		}

		result, err := workflows.Edit(ctx, env, workflows.EditOptions{Selection: sel})
		if err != nil {
			return err
		}

		switch {
		case result.Moved:
			fmt.Println(succeeded("Moved %s to %s", ui.Path.Sprint(result.From), ui.Path.Sprint(result.Entry.PathOrEmpty())))
		case result.PathRestored:
			fmt.Println(ui.Warning.Sprint("!") + " The path line was removed and has been restored to " + ui.Path.Sprint(result.From))
		default:
			fmt.Println(succeeded("Edited %s", ui.Path.Sprint(result.From)))
		}
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the password of an entry",
	Long: `Replaces the password of an entry. The new password is taken the same
way as for insert.

Examples:
  rpass passwd -p web/mail
  rpass passwd -p bank -g`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting passwd command")
		ctx := cmd.Context()

		env, err := loadEnv()
		if err != nil {
			return err
		}

		sel, err := selection(ctx, env)
		if err != nil {
			return err
		}

		password, length, err := newPassword()
		if err != nil {
			return err
		}

		result, err := workflows.Passwd(ctx, env, workflows.PasswdOptions{
			Selection: sel,
			Password:  password,
			Generate:  length,
		})
		if err != nil {
			return err
		}

		fmt.Println(succeeded("Changed the password of %s", ui.Path.Sprint(result.Entry.PathOrEmpty())))
		if result.Generated {
			fmt.Printf("  Generated password: %s\n", ui.Highlight.Sprint(result.Entry.Password))
		}
		return nil
	},
}
