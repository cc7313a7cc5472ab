package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/rpass/internal/index"
	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/utils"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	fixIndexPrefer string
	fixIndexDryRun bool
)

func init() {
	fixIndexCmd.Flags().StringVar(&fixIndexPrefer, "prefer", "", "resolve path mismatches in favour of 'index' or 'entry'")
	fixIndexCmd.Flags().BoolVar(&fixIndexDryRun, "dry-run", false, "report problems without fixing them")
}

var fixIndexCmd = &cobra.Command{
	Use:   "fix-index",
	Short: "Check every record against the index",
	Long: `Reads every record in the identifier folder and compares it with the
index. Records missing from the index are added, path mismatches are
resolved by --prefer or by asking, and index lines without a record can
be removed.

Examples:
  rpass fix-index
  rpass fix-index --prefer entry
  rpass fix-index --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting fix-index command")
		ctx := cmd.Context()

		prefer, err := workflows.ParsePreference(fixIndexPrefer)
		if err != nil {
			return err
		}

		env, err := loadEnv()
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Checking the index...")
		defer cleanup()

		opts := workflows.FixIndexOptions{
			Prefer: prefer,
			DryRun: fixIndexDryRun,
			Choose: func(m workflows.Mismatch) (workflows.Preference, error) {
				defer pauseSpinner(spinner)()
				return chooseSide(m)
			},
			RemoveOrphans: func(orphans []index.Pair) (bool, error) {
				defer pauseSpinner(spinner)()
				paths := make([]string, 0, len(orphans))
				for _, p := range orphans {
					paths = append(paths, p.Path)
				}
				fmt.Printf("Index lines without a record:\n%s\n", utils.FormatPaths(paths))
				return utils.Confirm("Remove them from the index?")
			},
		}

		result, err := workflows.FixIndex(ctx, env, opts)
		if err != nil {
			spinner.FinalMSG = failed(err)
			return err
		}

		spinner.FinalMSG = formatFixIndex(result)
		return nil
	},
}

// chooseSide asks which path of a mismatch to keep.
func chooseSide(m workflows.Mismatch) (workflows.Preference, error) {
	fromIndex := "index: " + m.IndexPath
	fromEntry := "entry: " + m.EntryPath

	choice, err := utils.Choose(fmt.Sprintf("%s has two paths, keep which?", m.ID), []string{fromIndex, fromEntry})
	if err != nil {
		return workflows.PreferAsk, err
	}
	if choice == fromEntry {
		return workflows.PreferEntry, nil
	}
	return workflows.PreferIndex, nil
}

func formatFixIndex(result *workflows.FixIndexResult) string {
	var b strings.Builder

	if result.DryRun {
		b.WriteString(ui.Warning.Sprint("[dry-run]") + " ")
	}
	b.WriteString(succeeded("Checked %d record(s)", result.Checked))

	for _, p := range result.Added {
		fmt.Fprintf(&b, "\n  added %s", ui.Path.Sprint(p.Path))
	}
	for _, m := range result.Fixed {
		kept := m.IndexPath
		if m.Kept == workflows.PreferEntry {
			kept = m.EntryPath
		}
		fmt.Fprintf(&b, "\n  %s now at %s", ui.Muted.Sprint(m.ID), ui.Path.Sprint(kept))
	}
	for _, id := range result.Unresolved {
		fmt.Fprintf(&b, "\n  %s left unresolved", ui.Muted.Sprint(id))
	}
	for _, p := range result.Orphans {
		state := "kept"
		if result.OrphansRemoved {
			state = "removed"
		}
		fmt.Fprintf(&b, "\n  %s has no record, %s", ui.Path.Sprint(p.Path), state)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(&b, "\n  %s %s", ui.Warning.Sprint("!"), w)
	}

	return b.String()
}
