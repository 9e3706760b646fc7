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

package dex2xml

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ianlewis/go-dex2xml/internal/folding"
	"github.com/ianlewis/go-dex2xml/source"
	"github.com/ianlewis/go-dex2xml/stardict"
)

// StarDictOptions are options for writing a StarDict dictionary.
type StarDictOptions struct {
	// Name is the output name. The dictionary files are named after it.
	Name string

	// Title is the dictionary title. Name without its directory is used if
	// empty.
	Title string

	// Description is a description of the dictionary.
	Description string

	// DictZip compresses the article data with dictzip.
	DictZip bool

	// Now returns the publication date. time.Now is used if nil.
	Now func() time.Time

	// Logger receives progress messages. Messages are discarded if nil.
	Logger *slog.Logger
}

// StarDictResult summarizes a StarDict export.
type StarDictResult struct {
	// Words is the number of headwords written.
	Words int

	// Synonyms is the number of synonyms written.
	Synonyms int

	// Ifo is the path of the .ifo file.
	Ifo string
}

// ExportStarDict writes the entries read from r as a StarDict dictionary.
// Each entry becomes one article. Its inflected forms and the cedilla
// spellings of the term and forms are written as synonyms.
//
// ExportStarDict returns ErrEmptyResultSet without creating any file if r has
// no entries.
func ExportStarDict(ctx context.Context, r source.Reader, opts *StarDictOptions) (*StarDictResult, error) {
	if opts == nil {
		opts = &StarDictOptions{}
	}
	o := *opts
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Title == "" {
		o.Title = filepath.Base(o.Name)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	s, err := r.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer s.Close()

	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		return nil, ErrEmptyResultSet
	}

	w, err := stardict.Create(o.Name, &stardict.Options{
		Bookname:    o.Title,
		Description: o.Description,
		Date:        o.Now(),
		DictZip:     o.DictZip,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPartitionIO, err)
	}

	for ok := true; ok; ok = s.Scan() {
		e := s.Entry()

		forms, err := r.Inflections(ctx, e.ID)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}

		synonyms := folding.WithVariants(forms)
		if folding.HasComma(e.Term) {
			synonyms = append(synonyms, folding.ToCedilla(e.Term))
		}

		if err := w.Add(e.Term, article(e), synonyms...); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("%w: %w", ErrPartitionIO, err)
		}
		o.Logger.Debug("exported article", "term", e.Term)
	}
	if err := s.Err(); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPartitionIO, err)
	}

	res := &StarDictResult{
		Words:    w.WordCount(),
		Synonyms: w.SynWordCount(),
		Ifo:      w.IfoPath(),
	}
	o.Logger.Info("stardict export complete",
		"words", res.Words,
		"synonyms", res.Synonyms,
		"ifo", res.Ifo,
	)
	return res, nil
}

// article returns the StarDict article for e: the definition followed by the
// source label.
func article(e *source.Entry) []byte {
	return []byte(e.Definition + "<br/><br/><b>Sursa: <i>" + html.EscapeString(e.Source) + "</i></b>")
}
