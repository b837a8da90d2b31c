// Package config handles repository configuration and discovery.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in
// .refdex/config.json.
type Config struct {
	ProjectID     string `json:"project_id,omitempty"`     // Owning review project for new records
	JudgmentModel string `json:"judgment_model,omitempty"` // Override for the judgment service model
}

const (
	RefdexDir    = ".refdex"
	ConfigFile   = "config.json"
	RecordsFile  = "records.jsonl"
	SettingsFile = "detection.yml"
	CacheDir     = "cache"
	DBFile       = "records.db"
)

// RefdexPath returns the path to the .refdex directory from a root path.
func RefdexPath(root string) string {
	return filepath.Join(root, RefdexDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, RefdexDir, ConfigFile)
}

// RecordsPath returns the path to records.jsonl from a root path.
func RecordsPath(root string) string {
	return filepath.Join(root, RefdexDir, RecordsFile)
}

// SettingsPath returns the path to detection.yml from a root path.
func SettingsPath(root string) string {
	return filepath.Join(root, RefdexDir, SettingsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, RefdexDir, CacheDir)
}

// DBPath returns the path to records.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, RefdexDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a refdex repository.
func IsRepository(root string) bool {
	info, err := os.Stat(RefdexPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a refdex
// repository. Returns the repository root path or an error if not
// found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a refdex repository (no .refdex directory found)")
		}
		abs = parent
	}
}

// Load reads config.json from the repository root. A missing file
// returns an empty config.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes config.json to the repository root.
func Save(root string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(root), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
