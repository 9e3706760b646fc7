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
	"fmt"
	"io"

	"github.com/ianlewis/go-dex2xml"
	"github.com/ianlewis/go-dex2xml/internal/config"
	"github.com/ianlewis/go-dex2xml/internal/prompt"
	"github.com/ianlewis/go-dex2xml/internal/sqldb"
	"github.com/ianlewis/go-dex2xml/source"
)

// askConnection asks for the connection settings and the output name. The
// configured values are the defaults.
func askConnection(p *prompt.Prompter, cfg *config.Config) error {
	db := &cfg.Database

	var err error
	if db.Host, err = p.Ask("Database server", db.Host); err != nil {
		return err
	}

	port := db.Port
	if port == 0 {
		port = sqldb.DefaultPort(db.Driver)
	}
	if db.Port, err = p.AskInt("Port", port); err != nil {
		return err
	}
	if db.User, err = p.Ask("User", db.User); err != nil {
		return err
	}
	if db.Password, err = p.Password("Password", db.Password); err != nil {
		return err
	}
	if db.Name, err = p.Ask("Database", db.Name); err != nil {
		return err
	}
	if cfg.Export.Name, err = p.Ask("Output name", cfg.Export.Name); err != nil {
		return err
	}

	//nolint:wrapcheck // validation errors are returned as is
	return cfg.Validate()
}

// sourceLister lists dictionary sources.
type sourceLister interface {
	Sources(ctx context.Context, ids []int) ([]*source.Source, error)
}

// chooseSources shows the selected sources and lets the user change them.
// It returns false if the user chose not to continue.
func chooseSources(ctx context.Context, w io.Writer, p *prompt.Prompter, r sourceLister, cfg *config.Config) (bool, error) {
	current, err := r.Sources(ctx, cfg.Export.Sources)
	if err != nil {
		return false, fmt.Errorf("%w: %w", dex2xml.ErrSourceUnavailable, err)
	}
	fmt.Fprintln(w, "Sources:")
	printSources(w, current, cfg.Export.Sources)

	change, err := p.Confirm("Change the default sources list", false)
	if err != nil {
		return false, err
	}

	if change {
		all, err := r.Sources(ctx, nil)
		if err != nil {
			return false, fmt.Errorf("%w: %w", dex2xml.ErrSourceUnavailable, err)
		}

		selected := map[int]bool{}
		for _, id := range cfg.Export.Sources {
			selected[id] = true
		}

		var ids []int
		for _, s := range all {
			ok, err := p.Confirm(fmt.Sprintf("Export %d %s", s.ID, s.Label()), selected[s.ID])
			if err != nil {
				return false, err
			}
			if ok {
				ids = append(ids, s.ID)
			}
		}
		if len(ids) == 0 {
			return false, fmt.Errorf("%w: no sources selected", config.ErrInvalid)
		}
		cfg.Export.Sources = ids

		fmt.Fprintln(w, "Sources:")
		printSources(w, all, ids)
	}

	return p.Confirm("Continue", true)
}
