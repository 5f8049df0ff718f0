package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the per-directory config file picked up next to the binary's
// working directory.
const FileName = "surfview.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Defaults reproduce the reference pseudosphere scene
	cfg := Default()

	// An explicit -config wins over the search path
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// CLI flags (highest priority)
	applyFlags(cfg)

	// Check the merged result once, so a bad file value and a bad flag are
	// reported together
	if err := cfg.Validate(); err != nil {
		if configPath != "" {
			return nil, fmt.Errorf("config %s: %w", configPath, err)
		}
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing file of ./surfview.yaml and
// ConfigDir()/config.yaml.
func findConfigFile() string {
	candidates := []string{
		FileName,
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
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
		return filepath.Join(home, "Library", "Application Support", "Surfview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Surfview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "surfview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "surfview")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are errors, so a
// misspelt "clamp_degenrate" does not silently keep the default. An empty
// file leaves cfg untouched.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
