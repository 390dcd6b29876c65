package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Directory and file permissions for ~/.genex
const (
	DefaultDirPermissions  = 0o755
	DefaultFilePermissions = 0o644
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", defaultDatabasePath())

	v.SetDefault("import.sniff_lines", 20)    // header must appear this early
	v.SetDefault("import.max_skip_ratio", 0.5) // >50% malformed lines rejects the file

	v.SetDefault("tree.max_generations", 0) // unbounded, cycle-guarded
	v.SetDefault("tree.search_limit", 20)
}

// Dir returns the genex home directory (~/.genex).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".genex"
	}
	return filepath.Join(home, ".genex")
}

func defaultDatabasePath() string {
	return filepath.Join(Dir(), "genex.db")
}
