package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the configuration directory name
	ConfigDir = "shipit-fleet"
	// ConfigFile is the settings filename
	ConfigFile = "config.yaml"
)

// Environment overrides
const (
	EnvRelay   = "SHIPIT_FLEET_RELAY"
	EnvUser    = "SHIPIT_FLEET_USER"
	EnvBackend = "SHIPIT_FLEET_BACKEND"
)

// GetSettingsPath returns the path to the default settings file
func GetSettingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, ConfigDir, ConfigFile), nil
}

// LoadSettings loads settings from path, or from the default location when
// path is empty. A missing default file yields DefaultSettings; a missing
// explicit file is an error. Environment overrides are applied last.
func LoadSettings(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = GetSettingsPath()
		if err != nil {
			return nil, err
		}
	}

	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return nil, fmt.Errorf("settings file not found: %s", path)
	default:
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	ApplyEnv(settings)
	return settings, nil
}

// ApplyEnv overrides settings from SHIPIT_FLEET_* environment variables
func ApplyEnv(s *Settings) {
	if v := strings.TrimSpace(os.Getenv(EnvRelay)); v != "" {
		s.RelayHost = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUser)); v != "" {
		s.User = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackend)); v != "" {
		s.Backend = v
	}
}

// SaveSettings writes settings to path, or to the default location when
// path is empty
func SaveSettings(s *Settings, path string) error {
	if path == "" {
		var err error
		path, err = GetSettingsPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
