package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/fixrun"
	projectConfigDir = ".fixrun"
	configFileName   = "config.yaml"
)

// LoadConfig loads the fixrun configuration by layering default, user, and project settings.
func LoadConfig() (FixrunConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User-specific configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return FixrunConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
	}

	// 3. Project-specific configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
		projectConfig, err := loadConfigFromFile(projectConfigPath)
		if err != nil {
			return FixrunConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		config = mergeConfigs(config, projectConfig)
	}

	if err := Validate(config); err != nil {
		return FixrunConfig{}, err
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a FixrunConfig from a YAML file and expands
// environment references in its string values.
func loadConfigFromFile(filePath string) (FixrunConfig, error) {
	var config FixrunConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return FixrunConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return FixrunConfig{}, err
	}

	config.Program = expandEnv(config.Program)
	config.FixtureDir = expandEnv(config.FixtureDir)
	config.Wrapper = expandEnv(config.Wrapper)
	config.CatalogFile = expandEnv(config.CatalogFile)
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Empty overlay
// fields keep the base value.
func mergeConfigs(base, overlay FixrunConfig) FixrunConfig {
	merged := base

	if overlay.Program != "" {
		merged.Program = overlay.Program
	}
	if overlay.FixtureDir != "" {
		merged.FixtureDir = overlay.FixtureDir
	}
	if overlay.Wrapper != "" {
		merged.Wrapper = overlay.Wrapper
	}
	if overlay.VerbosityMode != "" {
		merged.VerbosityMode = overlay.VerbosityMode
	}
	if overlay.CatalogFile != "" {
		merged.CatalogFile = overlay.CatalogFile
	}
	if overlay.LogLevel != "" {
		merged.LogLevel = overlay.LogLevel
	}
	// Color can only be switched on by a file; the -c flag covers the rest.
	merged.Color = base.Color || overlay.Color

	return merged
}

// Validate checks values that cannot be caught by YAML decoding.
func Validate(config FixrunConfig) error {
	switch config.VerbosityMode {
	case VerbosityModeFlag, VerbosityModeLevel:
	default:
		return fmt.Errorf("invalid verbosityMode %q, must be %q or %q", config.VerbosityMode, VerbosityModeFlag, VerbosityModeLevel)
	}
	if strings.TrimSpace(config.Program) == "" {
		return fmt.Errorf("program must not be empty")
	}
	if strings.TrimSpace(config.Wrapper) == "" {
		return fmt.Errorf("wrapper must not be empty")
	}
	return nil
}

// expandEnv expands ${VAR} and ${VAR:-default} references.
func expandEnv(value string) string {
	return os.Expand(value, func(key string) string {
		name, def, hasDefault := strings.Cut(key, ":-")
		if v, ok := os.LookupEnv(name); ok && v != "" {
			return v
		}
		if hasDefault {
			return def
		}
		return ""
	})
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
