package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/cameronehrlich/genex/errors"
)

// WriteDefault writes a config.toml with current defaults to ~/.genex,
// creating the directory if needed. Existing files are left alone.
func WriteDefault() (string, error) {
	dir := Dir()
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return "", errors.Wrap(err, "failed to create genex directory")
	}

	configPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	cfg := Config{
		Database: DatabaseConfig{Path: defaultDatabasePath()},
		Import:   ImportConfig{SniffLines: 20, MaxSkipRatio: 0.5},
		Tree:     TreeConfig{MaxGenerations: 0, SearchLimit: 20},
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal default config")
	}

	if err := os.WriteFile(configPath, content, DefaultFilePermissions); err != nil {
		return "", errors.Wrap(err, "failed to write default config")
	}

	return configPath, nil
}
