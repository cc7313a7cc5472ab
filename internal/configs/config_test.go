package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Main.UUIDFolder != "uuids" {
		t.Errorf("Expected uuid folder %q, got %q", "uuids", config.Main.UUIDFolder)
	}
	if config.Main.HistoryDays != 50 {
		t.Errorf("Expected 50 history days, got %d", config.Main.HistoryDays)
	}
	if config.Pass.PathKey != "path: " {
		t.Errorf("Expected path key %q, got %q", "path: ", config.Pass.PathKey)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[main]\nsync_folder = \"mirror\"\nhistory_days = 7\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Main.SyncFolder != "mirror" {
		t.Errorf("Expected sync folder %q, got %q", "mirror", config.Main.SyncFolder)
	}
	if config.Main.IndexEntry != "index" {
		t.Errorf("Expected default index entry, got %q", config.Main.IndexEntry)
	}
	if config.HistoryHorizon() != 7*24*time.Hour {
		t.Errorf("Expected 7 day horizon, got %s", config.HistoryHorizon())
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty uuid folder", "[main]\nuuid_folder = \"\"\n"},
		{"negative history", "[main]\nhistory_days = -1\n"},
		{"bad timeout", "[main]\ncommand_timeout = \"soon\"\n"},
		{"not toml", "[main\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}

func TestSaveConfigThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	config := DefaultConfig()
	config.Main.SyncRemote = "phone"
	config.Pass.UserKey = "login: "

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}
}

func TestSettingsInHome(t *testing.T) {
	s := &Settings{HomeDir: "/home/alice"}

	if got := s.InHome(".cache/rpass_history"); got != filepath.Join("/home/alice", ".cache/rpass_history") {
		t.Errorf("Unexpected relative resolution: %s", got)
	}
	if got := s.InHome("/var/log/rpass.log"); got != "/var/log/rpass.log" {
		t.Errorf("Absolute path should be unchanged, got %s", got)
	}
}

func TestDetectSettingsHonoursStoreDir(t *testing.T) {
	t.Setenv("PASSWORD_STORE_DIR", "/tmp/store")

	s := DetectSettings()
	if s.StoreRoot != "/tmp/store" {
		t.Errorf("Expected store root /tmp/store, got %s", s.StoreRoot)
	}
}
