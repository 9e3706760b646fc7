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

package mobi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrPartition indicates that a partition document could not be opened,
// written or closed.
var ErrPartition = errors.New("partition")

// unsafeKeyRunes are runes that are replaced in partition file names.
const unsafeKeyRunes = `/\:*?"<>|`

// Key returns the partition key for term: its first rune in upper case. Runes
// that can't be used in a file name are replaced with '_'.
func Key(term string) string {
	r, _ := utf8.DecodeRuneInString(term)
	if r == utf8.RuneError || unicode.IsControl(r) || strings.ContainsRune(unsafeKeyRunes, r) {
		return "_"
	}
	return string(unicode.ToUpper(r))
}

// PartitionPath returns the path of the partition document with the given key
// for the output name.
func PartitionPath(name, key string) string {
	return name + key + ".html"
}

type partition struct {
	key     string
	path    string
	created bool
	f       *os.File
	w       *bufio.Writer
}

// Partitioner routes entries to partition documents by the first letter of
// their term. Entries are expected to arrive sorted by term so that each
// partition is opened once. Only one partition is open at a time.
//
// A partition document created by the Partitioner is started with the
// document header and registered with the Descriptor. If the document already
// exists it is opened for appending instead and is not registered again.
// The document footer is written whenever a partition is closed.
type Partitioner struct {
	name   string
	desc   *Descriptor
	logger *slog.Logger

	cur    *partition
	opened int
}

// NewPartitioner returns a Partitioner that writes partition documents named
// after name and registers them with desc.
func NewPartitioner(name string, desc *Descriptor, logger *slog.Logger) *Partitioner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Partitioner{
		name:   name,
		desc:   desc,
		logger: logger,
	}
}

// Select returns the writer for the partition that term belongs to. If it
// differs from the current partition the current partition is closed first.
func (p *Partitioner) Select(term string) (io.Writer, error) {
	key := Key(term)
	if p.cur != nil && p.cur.key == key {
		return p.cur.w, nil
	}

	if err := p.Close(); err != nil {
		return nil, err
	}

	path := PartitionPath(p.name, key)
	created := true
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		created = false
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrPartition, path, err)
	}

	cur := &partition{
		key:     key,
		path:    path,
		created: created,
		f:       f,
		w:       bufio.NewWriter(f),
	}
	p.cur = cur
	p.opened++

	if created {
		if _, err := cur.w.WriteString(partitionHead); err != nil {
			return nil, fmt.Errorf("%w: writing %q: %w", ErrPartition, path, err)
		}
		p.desc.Add(key, filepath.Base(path))
		p.logger.Info("opened partition", "key", key, "path", path)
	} else {
		// Collations that ignore diacritics interleave keys such as A and Ă,
		// so reopening is routine.
		p.logger.Debug("reopened partition", "key", key, "path", path)
	}

	return cur.w, nil
}

// Current returns the key of the open partition or an empty string if no
// partition is open.
func (p *Partitioner) Current() string {
	if p.cur == nil {
		return ""
	}
	return p.cur.key
}

// Opened returns the number of times a partition was opened.
func (p *Partitioner) Opened() int {
	return p.opened
}

// Close writes the footer to the open partition and closes it. Close does
// nothing if no partition is open.
func (p *Partitioner) Close() error {
	cur := p.cur
	if cur == nil {
		return nil
	}
	p.cur = nil

	_, err := cur.w.WriteString(partitionEnd)
	if err == nil {
		err = cur.w.Flush()
	}
	if closeErr := cur.f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: closing %q: %w", ErrPartition, cur.path, err)
	}

	level := slog.LevelInfo
	if !cur.created {
		level = slog.LevelDebug
	}
	p.logger.Log(context.Background(), level, "closed partition", "key", cur.key, "path", cur.path)
	return nil
}
