// Package config loads the settings of the goswiss commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ezBadminton/goswiss/core"
	"github.com/ezBadminton/goswiss/store"
)

const (
	configFile = "goswiss/config.yaml"
	dataFile   = "goswiss/tournaments.db"
)

// The environment variables that override the file settings
const (
	EnvDriver          = "GOSWISS_DB_DRIVER"
	EnvDSN             = "GOSWISS_DB_DSN"
	EnvAddr            = "GOSWISS_ADDR"
	EnvLogLevel        = "GOSWISS_LOG_LEVEL"
	EnvBruteForceLimit = "GOSWISS_BRUTE_FORCE_LIMIT"
	EnvSeed            = "GOSWISS_SEED"
)

type Config struct {
	Driver          string   `yaml:"db_driver"`
	DSN             string   `yaml:"db_dsn"`
	Addr            string   `yaml:"addr"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	LogLevel        string   `yaml:"log_level"`
	BruteForceLimit int      `yaml:"brute_force_limit"`
	// Makes random pairings reproducible when set
	Seed *int64 `yaml:"seed"`
}

func defaults() *Config {
	return &Config{
		Driver:          store.DriverSQLite,
		Addr:            ":8080",
		AllowedOrigins:  []string{"*"},
		LogLevel:        logrus.InfoLevel.String(),
		BruteForceLimit: core.DefaultBruteForceLimit,
	}
}

// Returns the path of the config file in the XDG config directory
func DefaultPath() (string, error) {
	return xdg.ConfigFile(configFile)
}

// Loads the configuration.
//
// The defaults are overridden by the YAML file at path, then by
// the environment. A .env file in the working directory is
// loaded into the environment first. When path is empty the file
// in the XDG config directory is used if it exists.
func Load(path string) (*Config, error) {
	cfg := defaults()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve the config file path: %w", err)
		}
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	// A missing .env file is fine
	_ = godotenv.Load()

	if err := cfg.readEnv(); err != nil {
		return nil, err
	}

	if cfg.DSN == "" && cfg.Driver == store.DriverSQLite {
		dsn, err := xdg.DataFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve the database path: %w", err)
		}
		cfg.DSN = dsn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) readEnv() error {
	if driver := os.Getenv(EnvDriver); driver != "" {
		c.Driver = driver
	}
	if dsn := os.Getenv(EnvDSN); dsn != "" {
		c.DSN = dsn
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		c.Addr = addr
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.LogLevel = level
	}
	if limit := os.Getenv(EnvBruteForceLimit); limit != "" {
		value, err := strconv.Atoi(limit)
		if err != nil {
			return fmt.Errorf("invalid %s environment variable: %w", EnvBruteForceLimit, err)
		}
		c.BruteForceLimit = value
	}
	if seed := os.Getenv(EnvSeed); seed != "" {
		value, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s environment variable: %w", EnvSeed, err)
		}
		c.Seed = &value
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Driver {
	case store.DriverMemory, store.DriverSQLite, store.DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver %q", c.Driver)
	}
	if c.Driver != store.DriverMemory && strings.TrimSpace(c.DSN) == "" {
		return fmt.Errorf("the %s driver needs a database DSN", c.Driver)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.BruteForceLimit < 0 {
		return fmt.Errorf("the brute force limit must not be negative, got %d", c.BruteForceLimit)
	}
	return nil
}

// Returns the parsed log level. Validate has checked it.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
