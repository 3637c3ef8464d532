// config.go - Configuration management for the ceremony CLI, adapted from
// the teacher's cmd/auctiond JSON-backed Config: the fields now describe
// ceremony paths instead of auction parameters, but the load/default/save
// shape is unchanged.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the ceremony CLI's persistent configuration.
type Config struct {
	// Phase1Dir is the directory containing phase1radix2m{k} transcripts.
	Phase1Dir string `json:"phase1_dir"`
	// StatePath is where the current ceremony State is read from and
	// written to by default.
	StatePath string `json:"state_path"`

	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	EnableAudit  bool   `json:"enable_audit"`
	AuditLogPath string `json:"audit_log_path"`
}

// DefaultConfig returns the configuration a fresh ceremony directory gets.
func DefaultConfig() *Config {
	return &Config{
		Phase1Dir:    ".",
		StatePath:    "params.mpc",
		LogLevel:     "info",
		LogFile:      "phase2.log",
		EnableAudit:  true,
		AuditLogPath: "audit.log",
	}
}

// LoadConfig loads configuration from configPath, creating and persisting
// the default configuration if the file does not yet exist.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err == nil {
		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		var cfg Config
		if err := json.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		return &cfg, nil
	}

	cfg := DefaultConfig()
	if err := SaveConfig(cfg, configPath); err != nil {
		return nil, fmt.Errorf("failed to save default config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to configPath as indented JSON.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// Validate checks that cfg's paths are usable.
func (c *Config) Validate() error {
	if c.Phase1Dir == "" {
		return fmt.Errorf("phase1_dir must not be empty")
	}
	if c.StatePath == "" {
		return fmt.Errorf("state_path must not be empty")
	}
	return nil
}
