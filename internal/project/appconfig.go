package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShopFloor/internal/model"
)

// Environment variables that override the config file.
const (
	EnvLogLevel = "SHOPFLOOR_LOG_LEVEL"
	EnvLogFile  = "SHOPFLOOR_LOG_FILE"
)

// maxRecentFiles bounds the recent-files list kept in the config.
const maxRecentFiles = 10

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.shopfloor/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".shopfloor")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, fmt.Errorf("read config: %w", err)
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if config.RecentFiles == nil {
		config.RecentFiles = []string{}
	}
	return config, nil
}

// ApplyEnv returns a copy of config with environment overrides applied.
func ApplyEnv(config model.AppConfig) model.AppConfig {
	config.LogLevel = getEnv(EnvLogLevel, config.LogLevel)
	config.LogFile = getEnv(EnvLogFile, config.LogFile)
	return config
}

// AddRecentFile moves path to the front of the recent-files list.
func AddRecentFile(config model.AppConfig, path string) model.AppConfig {
	recent := []string{path}
	for _, p := range config.RecentFiles {
		if p != path && len(recent) < maxRecentFiles {
			recent = append(recent, p)
		}
	}
	config.RecentFiles = recent
	return config
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
