// Package config manages genex configuration.
//
// Configuration is layered (lowest to highest precedence):
// built-in defaults, ~/.genex/config.toml, a genex.toml found by walking up
// from the working directory, then GENEX_* environment variables.
package config

// Config represents the genex configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Import   ImportConfig   `mapstructure:"import" toml:"import"`
	Tree     TreeConfig     `mapstructure:"tree" toml:"tree"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// ImportConfig configures format sniffing and parse tolerance
type ImportConfig struct {
	// SniffLines is how many leading lines a detector inspects before
	// deciding a file is not a recognized format (default: 20)
	SniffLines int `mapstructure:"sniff_lines" toml:"sniff_lines"`

	// MaxSkipRatio is the fraction of malformed data lines beyond which a
	// genotype file is rejected as unrecognized rather than imported with
	// warnings (default: 0.5)
	MaxSkipRatio float64 `mapstructure:"max_skip_ratio" toml:"max_skip_ratio"`
}

// TreeConfig configures family tree queries
type TreeConfig struct {
	// MaxGenerations bounds ancestor enumeration; 0 means unbounded
	// (traversal is still cycle-guarded) (default: 0)
	MaxGenerations int `mapstructure:"max_generations" toml:"max_generations"`

	// SearchLimit caps the number of search results shown (default: 20)
	SearchLimit int `mapstructure:"search_limit" toml:"search_limit"`
}
