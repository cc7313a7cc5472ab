package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/rpass/internal/configs"
	kerrors "github.com/PolarWolf314/rpass/internal/errors"
	"github.com/PolarWolf314/rpass/internal/ui"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var (
	configInitForce bool
	configShowJSON  bool
)

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

func resetConfigCommandState() {
	configInitForce = false
	configShowJSON = false
	resetFlags(ConfigCmd)
}

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage rpass configuration",
	Long: `Provides commands for managing the rpass configuration file.

Examples:
  # Write the default configuration
  rpass config init

  # Show the effective configuration
  rpass config show --json`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		path := configs.RpassSettings.ConfigPath

		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Println(ui.Error.Sprint("✗") + " A config file already exists at " + ui.Path.Sprint(path))
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("rpass config init --force") + " to replace it")
			return fmt.Errorf("%s: %w", path, kerrors.ErrDestinationExists)
		}

		Logger.Debugf("Writing default config to %s", path)
		if err := configs.SaveConfig(path, configs.DefaultConfig()); err != nil {
			return Logger.ErrorfAndReturn("failed to write config: %v", err)
		}

		fmt.Println(succeeded("Wrote the default configuration to %s", ui.Path.Sprint(path)))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration in use: the file's values on top of the
defaults, along with the resolved store root.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")
		settings := configs.RpassSettings

		config, err := configs.LoadConfig(settings.ConfigPath)
		if err != nil {
			return err
		}

		if configShowJSON {
			output, err := json.MarshalIndent(struct {
				ConfigPath string          `json:"config_path"`
				StoreRoot  string          `json:"store_root"`
				Config     *configs.Config `json:"config"`
			}{settings.ConfigPath, settings.StoreRoot, config}, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		fmt.Printf("  %-12s %s\n", "Config:", ui.Path.Sprint(settings.ConfigPath))
		fmt.Printf("  %-12s %s\n", "Store root:", ui.Path.Sprint(settings.StoreRoot))
		fmt.Println()
		return toml.NewEncoder(os.Stdout).Encode(config)
	},
}
