// Package daemon manages the Spotter daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spotter-app/spotter/internal/app/scoring"
	"github.com/spotter-app/spotter/internal/infra/textgen"
)

// Config holds all daemon configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Scoring   scoring.Config  `toml:"scoring"`
	Generator textgen.Config  `toml:"generator"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig controls where the database lives.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// TelemetryConfig controls the Prometheus endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	home := spotterHome()
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8420,
		},
		Storage: StorageConfig{
			Dir: home,
		},
		Scoring:   scoring.DefaultConfig(),
		Generator: textgen.DefaultConfig(),
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "spotter.log"),
		},
	}
}

// LoadConfig reads config from ~/.spotter/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(spotterHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.spotter/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(spotterHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// spotterHome returns the Spotter data directory.
func spotterHome() string {
	if env := os.Getenv("SPOTTER_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".spotter")
}

// SpotterHome is exported for use by other packages.
func SpotterHome() string {
	return spotterHome()
}
