package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	AppName            = "docreview"
	ConfigDirName      = ".docreview"
	ConfigFileName     = "config.yml"
	DefaultResultsFile = "results.txt"
	HistoryFileName    = "history.db"
)

// ErrConfigNotFound is returned by FindConfigPath when no config exists.
var ErrConfigNotFound = errors.New("no .docreview/config.yml found")

// ConfigPath returns the config file location for a project root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}

// RootFromConfigPath maps root/.docreview/config.yml back to root. Configs
// stored elsewhere use their own directory as the root.
func RootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) != ConfigDirName {
		return dir
	}
	return filepath.Dir(dir)
}

// DefaultHistoryPath is history.db under $XDG_DATA_HOME/docreview.
func DefaultHistoryPath() string {
	return filepath.Join(xdg.DataHome, AppName, HistoryFileName)
}

// FindConfigPath walks from startDir (or the working directory) towards the
// filesystem root and returns the first .docreview/config.yml it sees.
func FindConfigPath(startDir string) (string, error) {
	start, err := searchStart(startDir)
	if err != nil {
		return "", err
	}
	for dir := start; ; {
		found, err := probeConfig(dir)
		if err != nil || found != "" {
			return found, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or parent directories", ErrConfigNotFound, start)
		}
		dir = parent
	}
}

func searchStart(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	return abs, nil
}

// probeConfig returns "" with no error when dir holds no config directory.
// A config directory without its file stops the search.
func probeConfig(dir string) (string, error) {
	configDir := filepath.Join(dir, ConfigDirName)
	if _, err := os.Stat(configDir); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	path := filepath.Join(configDir, ConfigFileName)
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("found %q but %s is missing", configDir, ConfigFileName)
	case err != nil:
		return "", fmt.Errorf("stat config path %q: %w", path, err)
	case info.IsDir():
		return "", fmt.Errorf("config path %q is a directory", path)
	}
	return path, nil
}
