package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 8420 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8420)
	}
	if cfg.Scoring.BasePoints != 10 {
		t.Errorf("Scoring.BasePoints = %d, want 10", cfg.Scoring.BasePoints)
	}
	if cfg.Generator.Enabled {
		t.Error("Generator.Enabled = true, want disabled by default")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("SPOTTER_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.Port = 9001
	cfg.Generator.Enabled = true
	cfg.Generator.Model = "phi3"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if loaded.Server.Port != 9001 {
		t.Errorf("Server.Port = %d, want 9001", loaded.Server.Port)
	}
	if !loaded.Generator.Enabled || loaded.Generator.Model != "phi3" {
		t.Errorf("Generator = %+v, want enabled phi3", loaded.Generator)
	}
	// untouched sections keep their defaults
	if loaded.Scoring.BasePoints != 10 {
		t.Errorf("Scoring.BasePoints = %d, want 10", loaded.Scoring.BasePoints)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SPOTTER_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != DefaultConfig().Server.Port {
		t.Errorf("Port = %d, want default", cfg.Server.Port)
	}
}

func TestLoadConfig_PartialFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SPOTTER_HOME", home)

	raw := "[server]\nport = 9999\n"
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want default retained", cfg.Server.Host)
	}
}
