// Package config manages zoned configuration and filesystem paths.
//
// Configuration includes the locations of zoned data files, which can be
// customized via environment variables, and the settings read from
// config.yaml. The default root is ~/.config/zoned/ containing
// layouts.json, the settings store and config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Paths contains all the filesystem paths used by zoned.
type Paths struct {
	// Root is the base directory for all zoned data (default: ~/.config/zoned)
	Root string

	// LayoutsFile is the user layouts file
	LayoutsFile string

	// SettingsDir is the directory of the diskv settings backend
	SettingsDir string

	// SettingsDB is the database file of the sqlite settings backend
	SettingsDB string

	// Config is the path to the config file
	Config string
}

// DefaultPaths returns the default paths for zoned.
// Paths can be overridden with environment variables:
// - ZONED_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("ZONED_ROOT")
	if root == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".config", "zoned")
	}
	return NewPaths(root)
}

// NewPaths returns the paths rooted at root. A leading ~ is expanded.
func NewPaths(root string) (*Paths, error) {
	expanded, err := homedir.Expand(root)
	if err != nil {
		return nil, fmt.Errorf("failed to expand root %s: %w", root, err)
	}

	return &Paths{
		Root:        expanded,
		LayoutsFile: filepath.Join(expanded, "layouts.json"),
		SettingsDir: filepath.Join(expanded, "settings"),
		SettingsDB:  filepath.Join(expanded, "settings.db"),
		Config:      filepath.Join(expanded, "config.yaml"),
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Root,
		p.SettingsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
