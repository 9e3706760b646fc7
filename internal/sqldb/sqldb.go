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

// Package sqldb opens connections to the databases a dictionary can be
// exported from.
//
// MySQL is the native DEXonline database. PostgreSQL and SQLite copies of the
// same schema are also supported. SQLite uses the pure Go modernc.org/sqlite
// driver by default and github.com/mattn/go-sqlite3 when built with the
// cgo_sqlite build tag.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Supported driver names.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

var (
	// ErrUnsupportedDriver indicates an unknown driver name.
	ErrUnsupportedDriver = errors.New("unsupported driver")

	// ErrConnect indicates the database could not be reached.
	ErrConnect = errors.New("connecting to database")
)

// Config is the connection configuration.
type Config struct {
	// Driver is one of MySQL, Postgres or SQLite.
	Driver string

	// DSN is a driver specific data source name. When set it is used as is
	// and the remaining fields are ignored.
	DSN string

	Host     string
	Port     int
	User     string
	Password string

	// Name is the database name. For SQLite it is the database file path.
	Name string
}

// Drivers returns the supported driver names.
func Drivers() []string {
	return []string{MySQL, Postgres, SQLite}
}

// DefaultPort returns the default server port for driver. It returns zero
// for drivers without a network server.
func DefaultPort(driver string) int {
	switch driver {
	case MySQL:
		return 3306
	case Postgres:
		return 5432
	default:
		return 0
	}
}

// Placeholder returns the bind parameter format used by driver.
func Placeholder(driver string) sq.PlaceholderFormat {
	if driver == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// DataSourceName returns the database/sql driver name and data source name
// for cfg.
func DataSourceName(cfg *Config) (string, string, error) {
	switch cfg.Driver {
	case MySQL:
		if cfg.DSN != "" {
			return MySQL, cfg.DSN, nil
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port(cfg)))
		mc.DBName = cfg.Name
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return MySQL, mc.FormatDSN(), nil

	case Postgres:
		if cfg.DSN != "" {
			return "pgx", cfg.DSN, nil
		}
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(port(cfg))),
			Path:   "/" + cfg.Name,
		}
		if cfg.User != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		}
		return "pgx", u.String(), nil

	case SQLite:
		if cfg.DSN != "" {
			return sqliteDriverName, cfg.DSN, nil
		}
		if cfg.Name == "" {
			return "", "", fmt.Errorf("%w: sqlite database path is empty", ErrConnect)
		}
		return sqliteDriverName, cfg.Name, nil

	default:
		return "", "", fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedDriver, cfg.Driver, strings.Join(Drivers(), ", "))
	}
}

func port(cfg *Config) int {
	if cfg.Port > 0 {
		return cfg.Port
	}
	return DefaultPort(cfg.Driver)
}

// Open opens the database described by cfg and verifies that it can be
// reached.
func Open(ctx context.Context, cfg *Config) (*sql.DB, error) {
	driverName, dsn, err := DataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return db, nil
}

// OpenSQLite opens the SQLite database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return db, nil
}
