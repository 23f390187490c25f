package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional on-disk configuration at ~/.config/wsdiff/config.toml.
// Every field maps to a flag; flags win when both are set.
//
// Example:
//
//	context = 3
//	fold_min = 10
//	no_filenames = true
//
//	[serve]
//	addr = ":8080"
//	store = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
type Config struct {
	Context     int    `toml:"context"`
	FoldMin     int    `toml:"fold_min"`
	NoFilenames bool   `toml:"no_filenames"`
	Lexer       string `toml:"lexer"`
	Workers     int    `toml:"workers"`
	NoCache     bool   `toml:"no_cache"`

	Serve ServeConfig `toml:"serve"`
}

// ServeConfig configures the serve subcommand.
type ServeConfig struct {
	Addr     string `toml:"addr"`
	Store    string `toml:"store"` // "memory" or "mongo"
	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
	Redis    string `toml:"redis"` // host:port; empty means file cache
	TTLHours int    `toml:"ttl_hours"`
}

// LoadConfig reads the config file if it exists. A missing file is not an
// error and yields zero-valued config.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return &Config{}, nil
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
