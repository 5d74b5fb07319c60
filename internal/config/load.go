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

const (
	// FileName is the settings file looked up in the working directory
	// and in ConfigDir.
	FileName = "canyon.yaml"

	// PathEnv names a settings file when no -config flag is given.
	PathEnv = "CANYON_CONFIG"
	// DirEnv replaces the per-user settings directory.
	DirEnv = "CANYON_CONFIG_DIR"
)

// Load builds the settings for one run. Each layer overrides the last:
// defaults, then the settings file, then command-line flags. The result
// is validated before it is returned.
func Load() (*Config, error) {
	cfg := Default()

	if path := settingsFile(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// settingsFile picks the file to read. An explicit path, from the flag or
// the environment, wins over the search and is never skipped silently.
func settingsFile() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return findConfigFile()
}

// findConfigFile returns the first settings file found next to the binary's
// working directory or in ConfigDir.
func findConfigFile() string {
	for _, dir := range []string{".", ConfigDir()} {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir is where Save writes and where the search looks second.
func ConfigDir() string {
	if dir := os.Getenv(DirEnv); dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
		return dir
	}

	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Canyon Flight")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Canyon Flight")
		}
		return filepath.Join(home, "AppData", "Roaming", "Canyon Flight")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "canyon-flight")
		}
		return filepath.Join(home, ".config", "canyon-flight")
	}
}

// loadFromFile overlays a YAML file on cfg. Keys absent from the file keep
// their current values; unknown keys are rejected so a misspelled tuning
// knob does not pass unnoticed.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}
