// conf/utils.go various util functions for configuration package
package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/cwhicks/siteingest/internal/errors"
)

// OS name constants for runtime.GOOS comparisons.
const (
	osWindows = "windows"
)

// GetDefaultConfigPaths returns a list of default configuration paths for the
// current operating system. If a config.yaml file is found in any of the
// paths, it returns that path as the only default.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	exePath, err := os.Executable()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "get-executable-path").
			Build()
	}
	exeDir := filepath.Dir(exePath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategorySystem).
			Context("operation", "get-home-directory").
			Build()
	}

	switch runtime.GOOS {
	case osWindows:
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "siteingest"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "siteingest"),
			"/etc/siteingest",
		}
	}

	// Check if config.yaml exists in any of the paths
	for _, path := range configPaths {
		configFile := filepath.Join(path, "config.yaml")
		if _, err := os.Stat(configFile); err == nil {
			return []string{path}, nil
		}
	}

	return configPaths, nil
}

// GetBasePath expands environment variables in the given path and ensures
// the resulting directory exists. If the path is relative, it is interpreted
// as relative to the current working directory.
func GetBasePath(path string) string {
	expandedPath := os.ExpandEnv(path)

	basePath := filepath.Clean(expandedPath)
	if basePath == "" || basePath == "." {
		return "."
	}

	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			// Fall back to the current directory if creation fails
			return "."
		}
	}

	return basePath
}
