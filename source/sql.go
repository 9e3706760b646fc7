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

package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ianlewis/go-dex2xml/internal/folding"
)

// ErrQuery indicates that a query against the database failed.
var ErrQuery = errors.New("query failed")

// DefaultSources are the dictionary source IDs exported when none are
// configured.
var DefaultSources = []int{27, 28, 29, 31, 32, 33, 36}

// statusActive is the Definition.status value of published definitions.
const statusActive = 0

// Options are options for a SQLReader.
type Options struct {
	// Sources restricts entries to definitions from the given source IDs.
	Sources []int

	// Placeholder is the bind parameter format of the database driver.
	Placeholder sq.PlaceholderFormat
}

// DefaultOptions is the default options for a SQLReader.
var DefaultOptions = &Options{
	Sources:     DefaultSources,
	Placeholder: sq.Question,
}

// SQLReader reads entries from a DEXonline database.
type SQLReader struct {
	db      *sql.DB
	sources []int
	builder sq.StatementBuilderType
}

// NewSQLReader returns a new SQLReader that queries db. The SQLReader does not
// take ownership of db.
func NewSQLReader(db *sql.DB, options *Options) *SQLReader {
	if options == nil {
		options = DefaultOptions
	}

	placeholder := options.Placeholder
	if placeholder == nil {
		placeholder = DefaultOptions.Placeholder
	}

	return &SQLReader{
		db:      db,
		sources: options.Sources,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// entriesQuery selects exportable definitions for the configured sources.
func (r *SQLReader) entriesQuery() sq.SelectBuilder {
	return r.builder.
		Select("d.id", "d.lexicon", "d.htmlRep", "s.name", "s.year").
		From("Definition d").
		Join("Source s ON d.sourceId = s.id").
		Where(sq.Eq{"s.id": r.sources}).
		Where(sq.NotEq{"d.lexicon": ""}).
		Where(sq.Eq{"d.status": statusActive}).
		OrderBy("d.lexicon", "d.id")
}

// Entries implements [Reader.Entries].
func (r *SQLReader) Entries(ctx context.Context) (Scanner, error) {
	return r.query(ctx, r.entriesQuery())
}

// Lookup returns the entries whose term is exactly term.
func (r *SQLReader) Lookup(ctx context.Context, term string) ([]*Entry, error) {
	s, err := r.query(ctx, r.entriesQuery().Where(sq.Eq{"d.lexicon": term}))
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var entries []*Entry
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *SQLReader) query(ctx context.Context, q sq.SelectBuilder) (*rowScanner, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: building entries query: %w", ErrQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: entries: %w", ErrQuery, err)
	}
	return &rowScanner{rows: rows}, nil
}

// Inflections implements [Reader.Inflections].
func (r *SQLReader) Inflections(ctx context.Context, id int64) ([]string, error) {
	query, args, err := r.builder.
		Select("i.formUtf8General").
		Distinct().
		From("FullTextIndex f").
		Join("InflectedForm i ON i.lexemModelId = f.lexemModelId").
		Where(sq.Eq{"f.definitionId": id}).
		Where(sq.Eq{"f.position": 0}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: building inflections query: %w", ErrQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: inflections of %d: %w", ErrQuery, id, err)
	}
	defer rows.Close()

	var forms []string
	for rows.Next() {
		var form sql.NullString
		if err := rows.Scan(&form); err != nil {
			return nil, fmt.Errorf("%w: inflections of %d: %w", ErrQuery, id, err)
		}
		if !form.Valid || form.String == "" {
			continue
		}
		forms = append(forms, form.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: inflections of %d: %w", ErrQuery, id, err)
	}
	return forms, nil
}

// Sources returns the dictionary sources with the given IDs ordered by ID. If
// ids is nil all sources are returned.
func (r *SQLReader) Sources(ctx context.Context, ids []int) ([]*Source, error) {
	q := r.builder.
		Select("id", "name", "year").
		From("Source").
		OrderBy("id")
	if ids != nil {
		q = q.Where(sq.Eq{"id": ids})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: building sources query: %w", ErrQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: sources: %w", ErrQuery, err)
	}
	defer rows.Close()

	var sources []*Source
	for rows.Next() {
		var name, year sql.NullString
		s := &Source{}
		if err := rows.Scan(&s.ID, &name, &year); err != nil {
			return nil, fmt.Errorf("%w: sources: %w", ErrQuery, err)
		}
		s.Name = name.String
		s.Year = year.String
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: sources: %w", ErrQuery, err)
	}
	return sources, nil
}

// rowScanner scans entries from a result set.
type rowScanner struct {
	rows  *sql.Rows
	entry *Entry
	err   error
}

// Scan implements [Scanner.Scan].
func (s *rowScanner) Scan() bool {
	if s.err != nil || !s.rows.Next() {
		return false
	}

	var (
		e          Entry
		definition sql.NullString
		name, year sql.NullString
	)
	if err := s.rows.Scan(&e.ID, &e.Term, &definition, &name, &year); err != nil {
		s.err = fmt.Errorf("%w: scanning entry: %w", ErrQuery, err)
		return false
	}
	e.Definition = folding.StripLines(definition.String)
	e.Source = label(name.String, year.String)
	s.entry = &e
	return true
}

// Entry implements [Scanner.Entry].
func (s *rowScanner) Entry() *Entry {
	return s.entry
}

// Err implements [Scanner.Err].
func (s *rowScanner) Err() error {
	if s.err != nil {
		return s.err
	}
	if err := s.rows.Err(); err != nil {
		return fmt.Errorf("%w: reading entries: %w", ErrQuery, err)
	}
	return nil
}

// Close implements [Scanner.Close].
func (s *rowScanner) Close() error {
	if err := s.rows.Close(); err != nil {
		return fmt.Errorf("closing entries: %w", err)
	}
	return nil
}
