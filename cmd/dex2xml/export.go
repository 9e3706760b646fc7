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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dex2xml"
	"github.com/ianlewis/go-dex2xml/internal/config"
	"github.com/ianlewis/go-dex2xml/internal/logging"
	"github.com/ianlewis/go-dex2xml/internal/prompt"
	"github.com/ianlewis/go-dex2xml/internal/sqldb"
	"github.com/ianlewis/go-dex2xml/source"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:         "export",
		Usage:        "Export the dictionary (default)",
		Flags:        exportFlags(),
		OnUsageError: onUsageError,
		Action:       runExport,
	}
}

// openReader opens the database described by cfg and returns a reader for
// the configured sources. The caller must close the returned database.
func openReader(ctx context.Context, cfg *config.Config) (*sql.DB, *source.SQLReader, error) {
	dbCfg := cfg.DB()
	db, err := sqldb.Open(ctx, &dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", dex2xml.ErrSourceUnavailable, err)
	}

	r := source.NewSQLReader(db, &source.Options{
		Sources:     cfg.Export.Sources,
		Placeholder: sqldb.Placeholder(dbCfg.Driver),
	})
	return db, r, nil
}

func runExport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger := logging.New(c.App.ErrWriter, cfg.Log)
	slog.SetDefault(logger)

	if !c.Bool("interactive") {
		return export(c.Context, c.App.Writer, cfg, nil, logger)
	}

	p := prompt.New(os.Stdin, c.App.Writer)
	err = export(c.Context, c.App.Writer, cfg, p, logger)
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", c.App.Name, err)
		if waitErr := p.Wait("Press Enter to exit..."); waitErr != nil {
			logger.Warn("waiting for input", "err", waitErr)
		}
	}
	return err
}

// export runs the export described by cfg. If p is not nil the connection
// settings and sources are asked for first.
func export(ctx context.Context, w io.Writer, cfg *config.Config, p *prompt.Prompter, logger *slog.Logger) error {
	if p != nil {
		if err := askConnection(p, cfg); err != nil {
			return err
		}
	}

	db, r, err := openReader(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if p != nil {
		ok, err := chooseSources(ctx, w, p, r, cfg)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		// The selected sources may have changed.
		r = source.NewSQLReader(db, &source.Options{
			Sources:     cfg.Export.Sources,
			Placeholder: sqldb.Placeholder(cfg.Database.Driver),
		})
	}

	logger.Info("exporting dictionary",
		"driver", cfg.Database.Driver,
		"database", cfg.Database.Name,
		"sources", cfg.Export.Sources,
		"output", cfg.Export.Name,
	)

	res, err := dex2xml.Export(ctx, r, &dex2xml.Options{
		Name:     cfg.Export.Name,
		Title:    cfg.Export.Title,
		Language: cfg.Export.Language,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("exporting %s: %w", cfg.Export.Name, err)
	}
	printResult(w, res)

	if cfg.Export.StarDict {
		sd, err := dex2xml.ExportStarDict(ctx, r, &dex2xml.StarDictOptions{
			Name:    cfg.Export.Name,
			Title:   cfg.Export.Title,
			DictZip: !cfg.Export.Uncompressed,
			Logger:  logger,
		})
		if err != nil {
			return fmt.Errorf("exporting StarDict %s: %w", cfg.Export.Name, err)
		}
		fmt.Fprintf(w, "StarDict: %s (%d words, %d synonyms)\n", sd.Ifo, sd.Words, sd.Synonyms)
	}

	return packageDict(ctx, w, cfg, res, logger)
}

// packageDict builds the .mobi file if requested. A missing or failing
// packaging tool is reported but is not an error.
func packageDict(ctx context.Context, w io.Writer, cfg *config.Config, res *dex2xml.Result, logger *slog.Logger) error {
	if !cfg.Package.Enabled {
		if cfg.Package.Cleanup {
			logger.Warn("cleanup requires kindlegen, keeping exported files")
		}
		return nil
	}

	err := dex2xml.Package(ctx, res.OPF, &dex2xml.PackageOptions{
		Tool:   cfg.Package.Tool,
		Output: w,
		Logger: logger,
	})
	switch {
	case errors.Is(err, dex2xml.ErrToolUnavailable):
		logger.Warn("kindlegen not found, the exported files can be packaged manually", "err", err, "opf", res.OPF)
		return nil
	case errors.Is(err, dex2xml.ErrToolFailed):
		logger.Warn("kindlegen failed, keeping exported files", "err", err, "opf", res.OPF)
		return nil
	case err != nil:
		return err
	}

	if cfg.Package.Cleanup {
		if err := dex2xml.RemoveOutputs(cfg.Export.Name); err != nil {
			return err
		}
		logger.Info("removed exported files", "output", cfg.Export.Name)
	}
	return nil
}

func printResult(w io.Writer, res *dex2xml.Result) {
	tbl := table.New("Partition", "File").WithWriter(w)
	for _, p := range res.Partitions {
		tbl.AddRow(p.Key, p.Href)
	}
	tbl.Print()

	fmt.Fprintf(w, "\n%d entries (%d cedilla duplicates) in %d partitions\n",
		res.Entries, res.Duplicates, len(res.Partitions))
	fmt.Fprintf(w, "Package: %s\n", filepath.Clean(res.OPF))
}
