// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the dex2xml configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ianlewis/go-dex2xml/internal/sqldb"
)

const (
	// EnvPath is the environment variable holding the configuration file
	// path.
	EnvPath = "DEX2XML_CONFIG"

	// DefaultPath is the configuration file read if it exists and no path
	// was given.
	DefaultPath = "dex2xml.yaml"
)

// ErrInvalid indicates that the configuration is invalid.
var ErrInvalid = errors.New("invalid configuration")

// Config is the dex2xml configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Export   ExportConfig   `yaml:"export"`
	Package  PackageConfig  `yaml:"package"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds the DEX database connection settings. Port zero
// selects the driver's default port.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"   env:"DEX_DB_DRIVER"   env-default:"mysql"`
	DSN      string `yaml:"dsn"      env:"DEX_DB_DSN"`
	Host     string `yaml:"host"     env:"DEX_DB_HOST"     env-default:"localhost"`
	Port     int    `yaml:"port"     env:"DEX_DB_PORT"`
	User     string `yaml:"user"     env:"DEX_DB_USER"     env-default:"root"`
	Password string `yaml:"password" env:"DEX_DB_PASSWORD"`
	Name     string `yaml:"name"     env:"DEX_DB_NAME"     env-default:"DEX"`
}

// ExportConfig holds the export settings.
type ExportConfig struct {
	Name     string `yaml:"name"     env:"DEX2XML_NAME"     env-default:"DEXonline"`
	Title    string `yaml:"title"    env:"DEX2XML_TITLE"`
	Sources  []int  `yaml:"sources"  env:"DEX2XML_SOURCES"  env-default:"27,28,29,31,32,33,36"`
	Language string `yaml:"language" env:"DEX2XML_LANGUAGE" env-default:"ro"`
	StarDict bool   `yaml:"stardict" env:"DEX2XML_STARDICT"`

	// Uncompressed writes the StarDict articles without dictzip.
	Uncompressed bool `yaml:"uncompressed" env:"DEX2XML_UNCOMPRESSED"`
}

// PackageConfig holds the packaging tool settings. An empty Tool selects the
// platform's kindlegen executable.
type PackageConfig struct {
	Enabled bool   `yaml:"enabled" env:"DEX2XML_KINDLEGEN"`
	Tool    string `yaml:"tool"    env:"DEX2XML_KINDLEGEN_PATH"`
	Cleanup bool   `yaml:"cleanup" env:"DEX2XML_CLEANUP"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"DEX2XML_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"DEX2XML_LOG_FORMAT" env-default:"text"`
}

// Load reads the configuration from the YAML file at path and the
// environment. Environment variables take precedence over the file.
//
// If path is empty the path is taken from EnvPath and then DefaultPath. A
// missing file is an error only if its path was given explicitly.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPath)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		// No file, load from ENV + defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !slices.Contains(sqldb.Drivers(), c.Database.Driver) {
		return fmt.Errorf("%w: database.driver %q must be one of %s",
			ErrInvalid, c.Database.Driver, strings.Join(sqldb.Drivers(), ", "))
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("%w: database.port %d out of range", ErrInvalid, c.Database.Port)
	}
	if c.Export.Name == "" {
		return fmt.Errorf("%w: export.name must not be empty", ErrInvalid)
	}
	if len(c.Export.Sources) == 0 {
		return fmt.Errorf("%w: export.sources must not be empty", ErrInvalid)
	}
	for _, id := range c.Export.Sources {
		if id <= 0 {
			return fmt.Errorf("%w: export.sources: invalid source ID %d", ErrInvalid, id)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q must be one of debug, info, warn, error", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q must be text or json", ErrInvalid, c.Log.Format)
	}
	return nil
}

// DB returns the connection configuration of the database.
func (c *Config) DB() sqldb.Config {
	return sqldb.Config{
		Driver:   c.Database.Driver,
		DSN:      c.Database.DSN,
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		Name:     c.Database.Name,
	}
}
