package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the content of config.toml.
type Config struct {
	Main Main `toml:"main"`
	Pass Pass `toml:"pass"`
}

// Main holds store layout, sync and history settings.
type Main struct {
	UUIDFolder      string `toml:"uuid_folder"`
	IndexEntry      string `toml:"index_entry"`
	RecordExtension string `toml:"record_extension"`
	SyncFolder      string `toml:"sync_folder"`
	SyncCommitFile  string `toml:"sync_commit_file"`
	SyncRemote      string `toml:"sync_remote"`
	SyncBranch      string `toml:"sync_branch"`
	HistoryFile     string `toml:"history_file"`
	HistoryDays     int    `toml:"history_days"`
	DaemonLog       string `toml:"daemon_log"`
	CommandTimeout  string `toml:"command_timeout"`
}

// Pass holds the key prefixes recognized inside an entry.
type Pass struct {
	UserKey    string `toml:"user_key"`
	UserKeyAlt string `toml:"user_key_alt"`
	PathKey    string `toml:"path_key"`
	URLKey     string `toml:"url_key"`
	UUIDKey    string `toml:"uuid_key"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Main: Main{
			UUIDFolder:      "uuids",
			IndexEntry:      "index",
			RecordExtension: "gpg",
			SyncFolder:      ".sync",
			SyncCommitFile:  ".sync_commit",
			SyncRemote:      "origin",
			SyncBranch:      "master",
			HistoryFile:     filepath.Join(".cache", "rpass_history"),
			HistoryDays:     50,
			DaemonLog:       filepath.Join(".cache", "rpass_daemon.log"),
			CommandTimeout:  "2m",
		},
		Pass: Pass{
			UserKey:    "user: ",
			UserKeyAlt: "username: ",
			PathKey:    "path: ",
			URLKey:     "url: ",
			UUIDKey:    "uuid: ",
		},
	}
}

// LoadConfig reads the config file at path on top of the defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig writes the config file, replacing any previous content.
func SaveConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(config); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Validate rejects settings that would break record naming.
func (c *Config) Validate() error {
	if c.Main.UUIDFolder == "" || c.Main.IndexEntry == "" || c.Main.SyncFolder == "" {
		return fmt.Errorf("uuid_folder, index_entry and sync_folder must not be empty")
	}
	if c.Main.RecordExtension == "" {
		return fmt.Errorf("record_extension must not be empty")
	}
	if c.Main.HistoryDays < 0 {
		return fmt.Errorf("history_days must not be negative")
	}
	if _, err := time.ParseDuration(c.Main.CommandTimeout); err != nil {
		return fmt.Errorf("command_timeout: %w", err)
	}
	return nil
}

// Timeout returns the limit for a single external command.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Main.CommandTimeout)
	if err != nil {
		return 2 * time.Minute
	}
	return d
}

// HistoryHorizon returns how far back usage counts toward the index order.
func (c *Config) HistoryHorizon() time.Duration {
	return time.Duration(c.Main.HistoryDays) * 24 * time.Hour
}
