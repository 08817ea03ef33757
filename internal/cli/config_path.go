package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"docreview/internal/config"
)

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig loads the config named by configPath. Without an explicit path
// a missing config file yields the defaults and an empty path.
func loadConfig(configPath string) (config.Config, string, error) {
	explicit := strings.TrimSpace(configPath) != ""
	path, err := resolveConfigPath(configPath)
	if err != nil {
		if !explicit && errors.Is(err, config.ErrConfigNotFound) {
			return config.Default(), "", nil
		}
		return config.Config{}, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, path, err
	}
	return cfg, path, nil
}
