// Package config handles loading and parsing application configuration.
// The config file path comes from two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Every value read from the file can be overridden by the environment
// variable named in its env:"..." tag.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers the CLI knows how to open.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Fault policies for the editor. See editor.FaultPolicy.
const (
	FaultSurface  = "surface"
	FaultSuppress = "suppress"
)

// ErrNoPath is returned by ResolvePath when neither the environment nor
// the flag names a config file.
var ErrNoPath = errors.New("config path is not set: use --config flag or CONFIG_PATH env var")

// Config is the root configuration structure.
//
// env-required:"true" means the app refuses to start if that value is
// missing. validate:"..." rules are checked after cleanenv has filled the
// struct, so a typo such as driver: sqlite fails at boot.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	Storage Storage `yaml:"storage"`

	// HTTPServer is embedded so cfg.Addr works as well as cfg.HTTPServer.Addr.
	HTTPServer `yaml:"http_server"`

	Editor Editor `yaml:"editor"`
}

// Storage selects and locates the record store.
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite3" validate:"oneof=sqlite3 postgres memory"`

	// DSN is a file path for sqlite3, a connection URL or key=value string
	// for postgres, and ignored for memory.
	DSN string `yaml:"dsn" env:"STORAGE_DSN" validate:"required_unless=Driver memory"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// Editor holds settings for the interactive editor session.
type Editor struct {
	FaultPolicy string `yaml:"fault_policy" env:"EDITOR_FAULT_POLICY" env-default:"surface" validate:"oneof=surface suppress"`
}

// ResolvePath picks the config file path. CONFIG_PATH wins over the flag
// value, matching how containers are usually configured.
func ResolvePath(flagValue string) (string, error) {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p, nil
	}
	if flagValue != "" {
		return flagValue, nil
	}
	return "", ErrNoPath
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	// Check first so the caller gets a clear message rather than a
	// cryptic "open: no such file" from the YAML reader.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
