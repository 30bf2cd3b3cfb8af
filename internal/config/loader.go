package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the config directories.
const FileName = "storekeeper.yaml"

// LoadStorekeeper loads the storekeeper configuration.
// Search order: customPath -> ~/.storekeeper/configs/storekeeper.yaml ->
// ./configs/storekeeper.yaml -> embedded default.
// Keys missing from the file keep their default values.
func LoadStorekeeper(customPath string) (StorekeeperConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return StorekeeperConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return StorekeeperConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultStorekeeperYAML)
	if err != nil {
		return DefaultStorekeeperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the hardcoded defaults and normalizes the result.
func parse(data []byte) (StorekeeperConfig, error) {
	cfg := DefaultStorekeeperConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StorekeeperConfig{}, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces out-of-range values with their defaults.
func (c *StorekeeperConfig) Normalize() {
	def := DefaultStorekeeperConfig()
	if c.Engine.StepsPerMove < 1 {
		c.Engine.StepsPerMove = 1
	}
	if c.Display.TickRate <= 0 {
		c.Display.TickRate = def.Display.TickRate
	}
	if c.Gameplay.AdvanceDelayTicks < 0 {
		c.Gameplay.AdvanceDelayTicks = 0
	}
}

// PackDirs returns the configured pack directories with ~ expanded.
func (c StorekeeperConfig) PackDirs() []string {
	dirs := make([]string, 0, len(c.Packs.Dirs))
	for _, d := range c.Packs.Dirs {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, ExpandHome(d))
		}
	}
	return dirs
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".storekeeper", "configs", filename)
}
