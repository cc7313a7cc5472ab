package configs

import (
	"os"
	"path/filepath"
)

type Settings struct {
	HomeDir    string
	ConfigPath string
	StoreRoot  string
}

var RpassSettings *Settings

func init() {
	RpassSettings = DetectSettings()
}

// DetectSettings resolves the home directory, config file and store root
// from the environment.
func DetectSettings() *Settings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(homeDir, ".config")
	}

	storeRoot := os.Getenv("PASSWORD_STORE_DIR")
	if storeRoot == "" {
		storeRoot = filepath.Join(homeDir, ".password-store")
	}

	return &Settings{
		HomeDir:    homeDir,
		ConfigPath: filepath.Join(configDir, "rpass", "config.toml"),
		StoreRoot:  storeRoot,
	}
}

// InHome resolves a configured path relative to the home directory.
// Absolute paths are returned unchanged.
func (s *Settings) InHome(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.HomeDir, path)
}
