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

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-dex2xml"
	"github.com/ianlewis/go-dex2xml/internal/config"
	"github.com/ianlewis/go-dex2xml/internal/sqldb"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeNoEntries is the exit code when there are no entries to
	// export.
	ExitCodeNoEntries

	// ExitCodeSourceError is the exit code when the database can't be
	// reached or queried.
	ExitCodeSourceError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", dex2xml.ErrDex2xml)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

// exitCode returns the process exit code for err.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse), errors.Is(err, config.ErrInvalid):
		return ExitCodeFlagParseError
	case errors.Is(err, dex2xml.ErrEmptyResultSet):
		return ExitCodeNoEntries
	case errors.Is(err, dex2xml.ErrSourceUnavailable), errors.Is(err, sqldb.ErrConnect):
		return ExitCodeSourceError
	default:
		return ExitCodeUnknownError
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// dbFlags returns the flags selecting the database and the exported sources.
func dbFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "read configuration from `FILE`",
			Aliases: []string{"c"},
			EnvVars: []string{config.EnvPath},
		},
		&cli.StringFlag{
			Name:  "driver",
			Usage: "database driver: " + strings.Join(sqldb.Drivers(), ", "),
		},
		&cli.StringFlag{
			Name:  "dsn",
			Usage: "driver specific data source name; overrides the connection flags",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "database server `HOST`",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "database server `PORT`",
		},
		&cli.StringFlag{
			Name:    "user",
			Usage:   "database `USER`",
			Aliases: []string{"u"},
		},
		&cli.StringFlag{
			Name:    "password",
			Usage:   "database `PASSWORD`",
			Aliases: []string{"p"},
		},
		&cli.StringFlag{
			Name:  "database",
			Usage: "database `NAME`, or the database file for sqlite",
		},
		&cli.IntSliceFlag{
			Name:    "sources",
			Usage:   "export definitions from the sources with the given `IDS`",
			Aliases: []string{"s"},
		},
	}
}

// exportFlags returns the flags of the export command.
func exportFlags() []cli.Flag {
	return append(dbFlags(),
		&cli.StringFlag{
			Name:    "output",
			Usage:   "write files named after `NAME`",
			Aliases: []string{"o"},
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "dictionary `TITLE`",
		},
		&cli.BoolFlag{
			Name:               "interactive",
			Usage:              "ask for the connection settings and sources",
			Aliases:            []string{"i"},
			DisableDefaultText: true,
		},
		&cli.BoolFlag{
			Name:               "kindlegen",
			Usage:              "build a .mobi file with kindlegen",
			Aliases:            []string{"k"},
			DisableDefaultText: true,
		},
		&cli.StringFlag{
			Name:  "kindlegen-path",
			Usage: "kindlegen executable `PATH`",
			Value: defaultKindlegen(),
		},
		&cli.BoolFlag{
			Name:               "cleanup",
			Usage:              "remove the exported files after building the .mobi file",
			DisableDefaultText: true,
		},
		&cli.BoolFlag{
			Name:               "stardict",
			Usage:              "also write a StarDict dictionary",
			DisableDefaultText: true,
		},
		&cli.BoolFlag{
			Name:  "dictzip",
			Usage: "compress the StarDict articles with dictzip",
			Value: true,
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log `LEVEL`: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "log `FORMAT`: text, json",
		},
	)
}

// loadConfig loads the configuration and applies the flags set on the
// command line.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	setString := func(name string, dst *string) {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if c.IsSet(name) {
			*dst = c.Bool(name)
		}
	}

	setString("driver", &cfg.Database.Driver)
	setString("dsn", &cfg.Database.DSN)
	setString("host", &cfg.Database.Host)
	if c.IsSet("port") {
		cfg.Database.Port = c.Int("port")
	}
	setString("user", &cfg.Database.User)
	setString("password", &cfg.Database.Password)
	setString("database", &cfg.Database.Name)
	if c.IsSet("sources") {
		cfg.Export.Sources = c.IntSlice("sources")
	}
	setString("output", &cfg.Export.Name)
	setString("title", &cfg.Export.Title)
	setBool("stardict", &cfg.Export.StarDict)
	if c.IsSet("dictzip") {
		cfg.Export.Uncompressed = !c.Bool("dictzip")
	}
	setBool("kindlegen", &cfg.Package.Enabled)
	setString("kindlegen-path", &cfg.Package.Tool)
	setBool("cleanup", &cfg.Package.Cleanup)
	setString("log-level", &cfg.Log.Level)
	setString("log-format", &cfg.Log.Format)

	if cfg.Package.Tool == "" {
		cfg.Package.Tool = defaultKindlegen()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	_, err := fmt.Fprintln(c.App.Writer, info.String())
	return err
}

func onUsageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}

func newDex2xmlApp() *cli.App {
	flags := append(exportFlags(),
		// Special flags are shown at the end.
		&cli.BoolFlag{
			Name:               "help",
			Usage:              "print this help text and exit",
			Aliases:            []string{"h"},
			DisableDefaultText: true,
		},
		&cli.BoolFlag{
			Name:               "version",
			Usage:              "print version information and exit",
			Aliases:            []string{"V"},
			DisableDefaultText: true,
		},
	)

	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Export the DEXonline database as a Kindle dictionary.",
		Description: strings.Join([]string{
			"Converts the DEXonline database into Mobipocket dictionary source files",
			"and optionally builds a .mobi file with kindlegen.",
			"http://github.com/ianlewis/go-dex2xml",
		}, "\n"),
		Flags:           flags,
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError:    onUsageError,
		Action: func(c *cli.Context) error {
			if c.Bool("help") {
				check(cli.ShowAppHelp(c))
				return nil
			}
			if c.Bool("version") {
				return printVersion(c)
			}
			if c.Args().Present() {
				return fmt.Errorf("%w: unexpected arguments: %s", ErrFlagParse, strings.Join(c.Args().Slice(), " "))
			}
			return runExport(c)
		},
		Commands: []*cli.Command{
			exportCommand(),
			sourcesCommand(),
			queryCommand(),
		},
	}
}
