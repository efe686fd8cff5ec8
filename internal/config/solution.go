package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SolutionConfigFile is the per-solution override file name.
const SolutionConfigFile = "projrename.yaml"

// SolutionConfig is the content of a solution's projrename.yaml.
type SolutionConfig struct {
	Layout *LayoutConfig `yaml:"layout,omitempty"`
}

// LoadSolutionConfig reads projrename.yaml from dir. A missing file yields
// an empty config.
func LoadSolutionConfig(dir string) (*SolutionConfig, error) {
	path := filepath.Join(dir, SolutionConfigFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &SolutionConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg SolutionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// EffectiveLayout merges the layers in precedence order: solution, then
// global, then defaults.
func EffectiveLayout(defaults LayoutConfig, global *Config, solution *SolutionConfig) LayoutConfig {
	out := defaults
	if global != nil {
		out = global.Layout.Over(out)
	}
	if solution != nil && solution.Layout != nil {
		out = solution.Layout.Over(out)
	}
	return out
}
