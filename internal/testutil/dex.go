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

// Package testutil implements helpers for building test databases and
// inspecting exported files.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dex2xml/internal/sqldb"
)

// Source is a row of the Source table.
type Source struct {
	ID   int
	Name string
	Year string
}

// Definition is a row of the Definition table.
type Definition struct {
	ID       int64
	SourceID int
	Lexicon  string
	HTML     string
	Status   int

	// Forms are the inflected forms linked to the definition. An empty form
	// is stored as NULL.
	Forms []string
}

// Fixture is the content of a test DEX database.
type Fixture struct {
	Sources     []Source
	Definitions []Definition
}

const schema = `
CREATE TABLE Source (
	id INTEGER PRIMARY KEY,
	name TEXT,
	year TEXT
);
CREATE TABLE Definition (
	id INTEGER PRIMARY KEY,
	sourceId INTEGER NOT NULL,
	lexicon TEXT,
	htmlRep TEXT,
	status INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE FullTextIndex (
	lexemModelId INTEGER NOT NULL,
	definitionId INTEGER NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE InflectedForm (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	lexemModelId INTEGER NOT NULL,
	formUtf8General TEXT
);
`

// NewDB creates a SQLite DEX database in a temporary directory populated
// with f. The database is closed when the test completes.
func NewDB(t *testing.T, f *Fixture) (*sql.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dex.db")
	db, err := sqldb.OpenSQLite(path)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	if f == nil {
		return db, path
	}

	for _, s := range f.Sources {
		if _, err := db.Exec(`INSERT INTO Source (id, name, year) VALUES (?, ?, ?)`, s.ID, s.Name, s.Year); err != nil {
			t.Fatalf("inserting source %d: %v", s.ID, err)
		}
	}

	for _, d := range f.Definitions {
		if _, err := db.Exec(
			`INSERT INTO Definition (id, sourceId, lexicon, htmlRep, status) VALUES (?, ?, ?, ?, ?)`,
			d.ID, d.SourceID, d.Lexicon, d.HTML, d.Status,
		); err != nil {
			t.Fatalf("inserting definition %d: %v", d.ID, err)
		}

		// The lexeme model shares the definition's ID.
		if _, err := db.Exec(
			`INSERT INTO FullTextIndex (lexemModelId, definitionId, position) VALUES (?, ?, 0)`,
			d.ID, d.ID,
		); err != nil {
			t.Fatalf("inserting index for %d: %v", d.ID, err)
		}

		for _, form := range d.Forms {
			var v sql.NullString
			if form != "" {
				v = sql.NullString{String: form, Valid: true}
			}
			if _, err := db.Exec(
				`INSERT INTO InflectedForm (lexemModelId, formUtf8General) VALUES (?, ?)`,
				d.ID, v,
			); err != nil {
				t.Fatalf("inserting form %q: %v", form, err)
			}
		}
	}

	return db, path
}
