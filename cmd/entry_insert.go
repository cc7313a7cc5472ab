package cmd

import (
	"fmt"

	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/utils"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	insertUsername string
	insertURL      string
)

func init() {
	insertCmd.Flags().StringVarP(&selectPath, "path", "p", "", "path of the new entry")
	insertCmd.Flags().StringVarP(&insertUsername, "username", "u", "", "username of the new entry")
	insertCmd.Flags().StringVar(&insertURL, "url", "", "url of the new entry")
	addPasswordFlags(insertCmd)
}

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Create a new entry",
	Long: `Creates a new entry with a fresh identifier and adds it to the index.

The password is taken from --password, generated with --generate, read
from stdin when it is piped, or prompted for twice.

Examples:
  rpass insert -p web/mail -u alice@example.com --url mail.example.com
  rpass insert -p bank -g -l 32
  echo hunter2 | rpass insert -p forum`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting insert command")
		ctx := cmd.Context()

		env, err := loadEnv()
		if err != nil {
			return err
		}

		entryPath := selectPath
		if entryPath == "" && utils.IsTerminal() {
			if entryPath, err = utils.Ask("Path of the new entry"); err != nil {
				return err
			}
		}

		password, length, err := newPassword()
		if err != nil {
			return err
		}

		result, err := workflows.Insert(ctx, env, workflows.InsertOptions{
			Path:     entryPath,
			Username: insertUsername,
			URL:      insertURL,
			Password: password,
			Generate: length,
		})
		if err != nil {
			return err
		}

		fmt.Println(succeeded("Created %s %s", ui.Path.Sprint(result.Entry.PathOrEmpty()), ui.Muted.Sprint(result.Entry.ID)))
		if result.Generated {
			fmt.Printf("  Generated password: %s\n", ui.Highlight.Sprint(result.Entry.Password))
		}
		return nil
	},
}
