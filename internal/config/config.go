// Package config loads the `.hddlint.toml` project configuration file (via
// BurntSushi/toml) supplying CLI defaults, the way the teacher's cmd/tqi and
// cmd/tqserver take flag defaults from CLI and environment.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the set of project-wide defaults a `.hddlint.toml` file may
// supply. CLI flags always override a value set here; a value left unset
// here falls back to the built-in default.
type Config struct {
	// Requirements lists `:requirements` flags for the project. The value is
	// decoded from the file but no command or analysis step reads it; a
	// domain's own `:requirements` section is not extended by it.
	Requirements []string `toml:"requirements"`

	// Color is decoded from the file but no command reads it; the CLI report
	// printer does not emit ANSI color.
	Color *bool `toml:"color"`

	// CachePath is the sqlite file used for the result cache. Empty
	// disables caching.
	CachePath string `toml:"cache_path"`

	// CacheEnabled toggles the result cache on or off without having to
	// remove CachePath.
	CacheEnabled bool `toml:"cache_enabled"`

	// ServerAddress is the bind address `hddlint serve` listens on when no
	// listen flag is given. `hddlintd` does not read the config file.
	ServerAddress string `toml:"server_address"`
}

// Default returns the built-in configuration used when no `.hddlint.toml`
// is found.
func Default() Config {
	return Config{
		Color:         boolPtr(true),
		CachePath:     ".hddlint-cache.db",
		CacheEnabled:  true,
		ServerAddress: "localhost:8080",
	}
}

// Load reads and parses the TOML config file at path, merging it onto
// Default(). If path does not exist, Default() is returned with no error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func boolPtr(b bool) *bool { return &b }
