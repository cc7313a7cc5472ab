package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/rpass/internal/syncer"
	"github.com/PolarWolf314/rpass/internal/ui"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	syncDryRun   bool
	syncDebounce time.Duration
	syncPoll     time.Duration
)

const defaultDebounce = 2 * time.Second

func init() {
	syncRepoCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "preview the sync without making changes")

	for _, c := range []*cobra.Command{SyncCmd, syncDaemonCmd} {
		c.Flags().DurationVar(&syncDebounce, "debounce", defaultDebounce, "quiet period after a change before syncing")
		c.Flags().DurationVar(&syncPoll, "poll", 0, "also sync at this interval (0 disables)")
	}

	SyncCmd.AddCommand(syncRepoCmd)
	SyncCmd.AddCommand(syncInitCmd)
	SyncCmd.AddCommand(syncDaemonCmd)
}

func resetSyncCommandState() {
	syncDryRun = false
	syncDebounce = defaultDebounce
	syncPoll = 0
}

// SyncCmd keeps the store and its path-named mirror repository in step.
var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the store with its mirror repository",
	Long: `Keeps the store in step with the mirror repository in the sync folder,
where every entry is stored under its path so other password store clients
can use it.

Without a subcommand, reconciles once, runs the daemon until interrupted
and reconciles again.

Examples:
  rpass sync init
  rpass sync repo --dry-run
  rpass sync daemon --poll 10m`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sync command")
		ctx := cmd.Context()

		env, err := loadEnv()
		if err != nil {
			return err
		}

		if err := reconcile(ctx, env, false); err != nil {
			return err
		}
		if err := runDaemon(ctx, env); err != nil {
			return err
		}
		return reconcile(context.WithoutCancel(ctx), env, false)
	},
}

var syncRepoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Reconcile the store and the mirror once",
	Long: `Applies the changes committed to the store and to the mirror since the
last sync to the other side, then records the new state.

Use --dry-run to list the actions without performing them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sync repo command")

		env, err := loadEnv()
		if err != nil {
			return err
		}
		return reconcile(cmd.Context(), env, syncDryRun)
	},
}

var syncInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the mirror repository",
	Long: `Creates the mirror repository in the sync folder, ignores it in the
store's repository, registers a decrypting diff driver and copies every
indexed entry into it under its path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sync init command")

		env, err := loadEnv()
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Creating the mirror...")
		defer cleanup()

		result, err := workflows.SyncInit(cmd.Context(), env)
		if err != nil {
			spinner.FinalMSG = failed(err)
			return err
		}

		msg := succeeded("Mirror created in %s", ui.Path.Sprint(env.Layout.SlaveRoot())) +
			fmt.Sprintf("\n  Copied %d entries.", result.Copied)
		if result.IgnoredInMaster {
			msg += "\n  Added the sync folder to the store's .gitignore."
		}
		spinner.FinalMSG = msg
		return nil
	},
}

var syncDaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Keep the mirror in sync until interrupted",
	Long: `Pulls the mirror, reconciles and pushes whenever a branch of the store
or of the mirror moves. Runs until interrupted and logs to the daemon log.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sync daemon command")

		env, err := loadEnv()
		if err != nil {
			return err
		}
		return runDaemon(cmd.Context(), env)
	},
}

// reconcile runs the reconciler once and prints its actions.
func reconcile(ctx context.Context, env *workflows.Env, dryRun bool) error {
	spinner, cleanup := startSpinner("Syncing the mirror...")
	defer cleanup()

	result, err := workflows.Sync(ctx, env, workflows.SyncOptions{
		DryRun: dryRun,
		Report: func(action syncer.Action, applied bool) {
			Logger.Infof("%s (applied=%t)", action, applied)
		},
	})
	if err != nil {
		spinner.FinalMSG = failed(err)
		return err
	}

	spinner.FinalMSG = formatSyncResult(result, dryRun)
	return nil
}

func formatSyncResult(result *syncer.Result, dryRun bool) string {
	var b strings.Builder

	switch {
	case len(result.Actions) == 0:
		b.WriteString(succeeded("Store and mirror are in sync"))
	case dryRun:
		b.WriteString(ui.Warning.Sprint("[dry-run]") + " Would sync:")
	default:
		b.WriteString(succeeded("Synced %d change(s)", len(result.Actions)))
	}

	for _, a := range result.Actions {
		b.WriteString("\n  - " + a.String())
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(&b, "\n  %s skipped %s", ui.Warning.Sprint("!"), s)
	}
	if dryRun && len(result.Actions) > 0 {
		b.WriteString("\n" + ui.Info.Sprint("No changes made.") + " Run without --dry-run to execute.")
	}

	return b.String()
}

func runDaemon(ctx context.Context, env *workflows.Env) error {
	fmt.Println(ui.Info.Sprint("→") + " Watching for changes, logging to " +
		ui.Path.Sprint(env.Settings.InHome(env.Config.Main.DaemonLog)))

	return workflows.Daemon(ctx, env, workflows.DaemonOptions{
		Debounce: syncDebounce,
		Poll:     syncPoll,
	})
}
