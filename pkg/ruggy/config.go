package ruggy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// DefaultDataPath is used when no other source provides one.
	DefaultDataPath = "./ruggy-data"

	// EnvDataPath is the environment variable consulted by LoadConfig.
	EnvDataPath = "RUGGY_DATA_PATH"

	// ConfigFileName is the config file LoadConfig looks for.
	ConfigFileName = "ruggy.config.json"
)

// Config holds the resolved runtime configuration.
type Config struct {
	DataPath string `json:"data_path"`
}

// ConfigOptions steers LoadConfig.
type ConfigOptions struct {
	// DataPath, when non-empty, wins over every other source.
	DataPath string

	// ConfigDir is the directory searched for ConfigFileName.
	// Empty means the current directory.
	ConfigDir string
}

// LoadConfig resolves the data path from, in order: the explicit option, the
// RUGGY_DATA_PATH environment variable, a ruggy.config.json file, and the
// built-in default. A missing config file is not an error; an unreadable or
// malformed one is.
func LoadConfig(opts ConfigOptions) (Config, error) {
	if opts.DataPath != "" {
		return Config{DataPath: opts.DataPath}, nil
	}
	if v := os.Getenv(EnvDataPath); v != "" {
		return Config{DataPath: v}, nil
	}
	dir := opts.ConfigDir
	if dir == "" {
		dir = "."
	}
	name := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{DataPath: DefaultDataPath}, nil
		}
		return Config{}, fmt.Errorf("ruggy: read config %s: %w", name, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("ruggy: parse config %s: %w", name, err)
	}
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath
	}
	return cfg, nil
}

// OpenFromConfig resolves the data path via LoadConfig and opens the database
// there with default Options.
func OpenFromConfig(opts ConfigOptions) (*Database, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	return Open(cfg.DataPath)
}

// NewPoolFromConfig resolves the data path via LoadConfig and creates a pool
// over it.
func NewPoolFromConfig(opts ConfigOptions, poolOpts PoolOptions) (*Pool, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	return NewPoolWithOptions(cfg.DataPath, poolOpts)
}
