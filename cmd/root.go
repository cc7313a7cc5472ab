package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/rpass/internal/configs"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	logger "github.com/PolarWolf314/rpass/internal/logging"
	"github.com/PolarWolf314/rpass/internal/workflows"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// testEnv replaces the environment built from the user's settings.
	testEnv *workflows.Env
)

// AddCommands registers every rpass command and the shared flags on root.
func AddCommands(root *cobra.Command) {
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
	}

	root.AddCommand(insertCmd)
	root.AddCommand(getCmd)
	root.AddCommand(editCmd)
	root.AddCommand(passwdCmd)
	root.AddCommand(mvCmd)
	root.AddCommand(rmCmd)
	root.AddCommand(lsCmd)
	root.AddCommand(initCmd)
	root.AddCommand(fixIndexCmd)
	root.AddCommand(bulkRenameCmd)
	root.AddCommand(SyncCmd)
	root.AddCommand(ConfigCmd)
}

// loadEnv reads the configuration and wires the workflows to the store.
func loadEnv() (*workflows.Env, error) {
	if testEnv != nil {
		return testEnv, nil
	}

	settings := configs.RpassSettings
	Logger.Debugf("Store root: %s", settings.StoreRoot)
	if info, err := os.Stat(settings.StoreRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", settings.StoreRoot, kerrors.ErrStoreNotInitialized)
	}

	Logger.Debugf("Loading config from %s", settings.ConfigPath)
	config, err := configs.LoadConfig(settings.ConfigPath)
	if err != nil {
		return nil, err
	}

	return workflows.NewEnv(config, settings, Logger), nil
}

// Helper functions for testing

// SetEnv makes every command run against env.
func SetEnv(env *workflows.Env) {
	testEnv = env
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	testEnv = nil
	resetCommandState()
}

// resetCommandState resets every flag variable.
func resetCommandState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}
	resetEntryCommandState()
	resetMaintenanceCommandState()
	resetSyncCommandState()
	resetConfigCommandState()
}

// resetFlags clears the changed state of every flag below cmd.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
