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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ianlewis/go-dex2xml/internal/sqldb"
)

var envVars = []string{
	EnvPath,
	"DEX_DB_DRIVER",
	"DEX_DB_DSN",
	"DEX_DB_HOST",
	"DEX_DB_PORT",
	"DEX_DB_USER",
	"DEX_DB_PASSWORD",
	"DEX_DB_NAME",
	"DEX2XML_NAME",
	"DEX2XML_TITLE",
	"DEX2XML_SOURCES",
	"DEX2XML_LANGUAGE",
	"DEX2XML_STARDICT",
	"DEX2XML_UNCOMPRESSED",
	"DEX2XML_KINDLEGEN",
	"DEX2XML_KINDLEGEN_PATH",
	"DEX2XML_CLEANUP",
	"DEX2XML_LOG_LEVEL",
	"DEX2XML_LOG_FORMAT",
}

// clearEnv unsets the configuration environment variables for the duration
// of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dex2xml.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, DatabaseConfig{
		Driver: sqldb.MySQL,
		Host:   "localhost",
		User:   "root",
		Name:   "DEX",
	}, cfg.Database)
	require.Equal(t, ExportConfig{
		Name:     "DEXonline",
		Sources:  []int{27, 28, 29, 31, 32, 33, 36},
		Language: "ro",
	}, cfg.Export)
	require.Equal(t, PackageConfig{}, cfg.Package)
	require.Equal(t, LogConfig{Level: "info", Format: "text"}, cfg.Log)
}

const testYAML = `
database:
  driver: postgres
  host: db.example.com
  port: 5433
  user: dex
  password: secret
  name: dex
export:
  name: out/DEX
  sources: [27, 40]
  stardict: true
package:
  enabled: true
  tool: /opt/kindlegen
  cleanup: true
log:
  level: debug
  format: json
`

func TestLoad_file(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeYAML(t, testYAML))
	require.NoError(t, err)

	require.Equal(t, sqldb.Config{
		Driver:   sqldb.Postgres,
		Host:     "db.example.com",
		Port:     5433,
		User:     "dex",
		Password: "secret",
		Name:     "dex",
	}, cfg.DB())
	require.Equal(t, "out/DEX", cfg.Export.Name)
	require.Equal(t, []int{27, 40}, cfg.Export.Sources)
	require.Equal(t, "ro", cfg.Export.Language)
	require.True(t, cfg.Export.StarDict)
	require.Equal(t, PackageConfig{Enabled: true, Tool: "/opt/kindlegen", Cleanup: true}, cfg.Package)
	require.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoad_envPath(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPath, writeYAML(t, testYAML))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, sqldb.Postgres, cfg.Database.Driver)
}

func TestLoad_envOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEX_DB_HOST", "override.example.com")
	t.Setenv("DEX2XML_SOURCES", "1,2,3")

	cfg, err := Load(writeYAML(t, testYAML))
	require.NoError(t, err)
	require.Equal(t, "override.example.com", cfg.Database.Host)
	require.Equal(t, []int{1, 2, 3}, cfg.Export.Sources)
}

func TestLoad_missingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEX_DB_DRIVER", "oracle")

	_, err := Load("")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: sqldb.MySQL},
			Export:   ExportConfig{Name: "DEXonline", Sources: []int{27}},
			Log:      LogConfig{Level: "info", Format: "text"},
		}
	}

	testCases := map[string]struct {
		modify func(*Config)
		valid  bool
	}{
		"valid": {
			modify: func(*Config) {},
			valid:  true,
		},
		"sqlite": {
			modify: func(c *Config) { c.Database.Driver = sqldb.SQLite },
			valid:  true,
		},
		"upper case level": {
			modify: func(c *Config) { c.Log.Level = "DEBUG" },
			valid:  true,
		},
		"unknown driver": {
			modify: func(c *Config) { c.Database.Driver = "oracle" },
		},
		"negative port": {
			modify: func(c *Config) { c.Database.Port = -1 },
		},
		"large port": {
			modify: func(c *Config) { c.Database.Port = 70000 },
		},
		"empty name": {
			modify: func(c *Config) { c.Export.Name = "" },
		},
		"no sources": {
			modify: func(c *Config) { c.Export.Sources = nil },
		},
		"invalid source": {
			modify: func(c *Config) { c.Export.Sources = []int{27, 0} },
		},
		"unknown level": {
			modify: func(c *Config) { c.Log.Level = "trace" },
		},
		"unknown format": {
			modify: func(c *Config) { c.Log.Format = "xml" },
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}
