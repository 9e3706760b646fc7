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
	"strings"
)

// Entry is a single dictionary definition.
type Entry struct {
	// ID identifies the entry and is used to look up its inflected forms.
	ID int64

	// Term is the headword. It is never empty.
	Term string

	// Definition is the pre-formatted definition markup with line breaks
	// removed.
	Definition string

	// Source is the human readable citation of the dictionary the entry was
	// taken from.
	Source string
}

// Source is a dictionary that definitions are taken from.
type Source struct {
	ID   int
	Name string
	Year string
}

// Label returns the citation label for the source, e.g. "DEX '09 2009".
func (s *Source) Label() string {
	return label(s.Name, s.Year)
}

func label(name, year string) string {
	return strings.TrimSpace(name + " " + year)
}

// Scanner iterates over entries in ascending term order. A Scanner cannot be
// restarted and must be closed by the caller.
type Scanner interface {
	// Scan advances the scanner to the next entry. It returns false when the
	// scan stops either by reaching the end of the entries or an error.
	Scan() bool

	// Entry returns the current entry.
	Entry() *Entry

	// Err returns the first error encountered.
	Err() error

	// Close releases resources held by the scanner.
	Close() error
}

// Reader is a source of dictionary entries and their inflected forms.
type Reader interface {
	// Entries returns a scanner over all exportable entries ordered by term.
	Entries(ctx context.Context) (Scanner, error)

	// Inflections returns the distinct inflected forms of the entry with the
	// given ID. Empty forms are never returned.
	Inflections(ctx context.Context, id int64) ([]string, error)
}
