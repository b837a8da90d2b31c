package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds detection defaults read from .refdex/detection.yml.
// CLI flags override individual fields.
type Settings struct {
	Threshold     float64 `yaml:"threshold"`
	Method        string  `yaml:"method"`
	JudgmentModel string  `yaml:"judgment_model"`
	AutoMerge     bool    `yaml:"auto_merge"`
}

// DefaultSettings returns the standard detection configuration.
func DefaultSettings() *Settings {
	return &Settings{
		Threshold: 0.85,
		Method:    "hybrid",
	}
}

// validMethods lists the supported detection method values.
var validMethods = []string{"rule_based", "judgment_assisted", "hybrid"}

// LoadSettings reads and validates detection.yml from the given path.
// A missing file returns the defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.Threshold < 0 || s.Threshold > 1 {
		return fmt.Errorf("threshold %v must be between 0 and 1", s.Threshold)
	}
	for _, m := range validMethods {
		if s.Method == m {
			return nil
		}
	}
	return fmt.Errorf("method %q must be one of %v", s.Method, validMethods)
}

// SaveSettings writes detection.yml to the given path.
func SaveSettings(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
