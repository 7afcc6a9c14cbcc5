package config

import (
	"os"
	"path/filepath"
)

// ConfigDirName is the per-project directory holding bundler settings.
const ConfigDirName = ".bundler"

// DefaultConfigPath returns <root>/.bundler/config.yaml
func DefaultConfigPath(root string) string {
	return filepath.Join(root, ConfigDirName, "config.yaml")
}

// ResolveConfigPath picks the config file for a run
// Priority order:
//  1. explicit path (the --config flag)
//  2. BUNDLER_CONFIG environment variable (if set)
//  3. <root>/.bundler/config.yaml
func ResolveConfigPath(root, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("BUNDLER_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigPath(root)
}
