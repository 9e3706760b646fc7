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
	"strings"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-dex2xml"
	"github.com/ianlewis/go-dex2xml/source"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:         "query",
		Usage:        "Print the definitions of a term",
		ArgsUsage:    "TERM",
		Flags:        dbFlags(),
		OnUsageError: onUsageError,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: expected one TERM argument, got %d", ErrFlagParse, c.NArg())
			}
			term := c.Args().First()

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			db, r, err := openReader(c.Context, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := r.Lookup(c.Context, term)
			if err != nil {
				return fmt.Errorf("%w: %w", dex2xml.ErrSourceUnavailable, err)
			}
			if len(entries) == 0 {
				return fmt.Errorf("%w: %q", dex2xml.ErrEmptyResultSet, term)
			}

			printEntries(c.App.Writer, entries)
			return nil
		},
	}
}

// printEntries prints entries with their definitions as plain text.
func printEntries(w io.Writer, entries []*source.Entry) {
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", e.Term, e.Source)
		fmt.Fprintln(w, strings.TrimSpace(html2text.HTML2Text(e.Definition)))
	}
}
