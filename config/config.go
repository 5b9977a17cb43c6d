// Package config reads runtime settings from ASHAETHER_* environment
// variables. Command-line flags in cmd/ashaether override what it returns.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/nathoo/ashaether/logging"
)

// Prefix is prepended to every variable name.
const Prefix = "ASHAETHER_"

// Backend selects the save slot store.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendSQLite Backend = "sqlite"
)

var ErrUnknownBackend = errors.New("unknown save backend")

// Config is the binary's configuration.
type Config struct {
	// ContentDir holds Lua, YAML or JSON content files. Empty uses the
	// embedded default bundle.
	ContentDir  string  `env:"CONTENT_DIR"`
	SaveBackend Backend `env:"SAVE_BACKEND" envDefault:"sqlite"`
	RedisURL    string  `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SQLitePath  string  `env:"SQLITE_PATH" envDefault:"ashaether.db"`
	// Seed fixes the loot RNG of new games. Zero derives it from the
	// session id.
	Seed int64 `env:"SEED"`

	Logging logging.Config `envPrefix:"LOG_"`
}

// Option adjusts parsed settings before they are validated.
type Option func(*Config)

// WithContentDir overrides the content directory when dir is non-empty.
func WithContentDir(dir string) Option {
	return func(c *Config) {
		if dir != "" {
			c.ContentDir = dir
		}
	}
}

// Load parses the process environment.
func Load(opts ...Option) (Config, error) {
	return parse(env.Options{Prefix: Prefix}, opts)
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string, opts ...Option) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ}, opts)
}

func parse(envOpts env.Options, opts []Option) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings env tags cannot express.
func (c Config) Validate() error {
	switch c.SaveBackend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis backend needs %sREDIS_URL", Prefix)
		}
	default:
		return fmt.Errorf("%q: %w", c.SaveBackend, ErrUnknownBackend)
	}
	if c.SaveBackend == BackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("sqlite backend needs %sSQLITE_PATH", Prefix)
	}
	if c.ContentDir != "" {
		if _, err := os.Stat(c.ContentDir); err != nil {
			return fmt.Errorf("content dir: %w", err)
		}
	}
	return nil
}
