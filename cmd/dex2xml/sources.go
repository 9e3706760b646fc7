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
	"fmt"
	"io"
	"slices"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dex2xml"
	"github.com/ianlewis/go-dex2xml/source"
)

func sourcesCommand() *cli.Command {
	return &cli.Command{
		Name:         "sources",
		Usage:        "List the dictionary sources",
		Description:  "Lists all sources in the database. Exported sources are marked with *.",
		Flags:        dbFlags(),
		OnUsageError: onUsageError,
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			db, r, err := openReader(c.Context, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			all, err := r.Sources(c.Context, nil)
			if err != nil {
				return fmt.Errorf("%w: %w", dex2xml.ErrSourceUnavailable, err)
			}
			printSources(c.App.Writer, all, cfg.Export.Sources)
			return nil
		},
	}
}

// printSources prints a table of sources. Sources in selected are marked.
func printSources(w io.Writer, sources []*source.Source, selected []int) {
	tbl := table.New("", "ID", "Name", "Year").WithWriter(w)
	for _, s := range sources {
		mark := ""
		if slices.Contains(selected, s.ID) {
			mark = "*"
		}
		tbl.AddRow(mark, s.ID, s.Name, s.Year)
	}
	tbl.Print()
}
