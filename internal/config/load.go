package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load(ov *Overrides) (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations
	var configPath string
	if ov != nil {
		configPath = ov.ConfigPath
	}
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	ov.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the showcase cannot run with.
func (c *Config) Validate() error {
	if c.Camera.Breakpoint <= 0 {
		return fmt.Errorf("camera.breakpoint must be positive, got %d", c.Camera.Breakpoint)
	}
	if c.Camera.TweenDuration < 0 {
		return fmt.Errorf("camera.tween_duration must not be negative")
	}
	if c.Loading.ByteWeight < 0 || c.Loading.ByteWeight > 1 {
		return fmt.Errorf("loading.byte_weight must be within [0,1], got %v", c.Loading.ByteWeight)
	}
	if c.Loading.Watchdog <= 0 {
		return fmt.Errorf("loading.watchdog must be positive")
	}
	if _, ok := c.Camera.Poses["nav"]; !ok {
		return fmt.Errorf("camera.poses must define the nav pose")
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./castle.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "CastleShowcase")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "CastleShowcase")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "castle-showcase")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "castle-showcase")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
