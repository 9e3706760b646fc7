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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ianlewis/go-dex2xml/mobi"
	"github.com/ianlewis/go-dex2xml/source"
)

// DefaultName is the default output name.
const DefaultName = "DEXonline"

// Options are options for an export run.
type Options struct {
	// Name is the output name. It is used as the prefix of all output files
	// and may include a directory.
	Name string

	// Title is the dictionary title. Name without its directory is used if
	// empty.
	Title string

	// Identifier is the unique identifier of the package. A random UUID is
	// used if empty.
	Identifier string

	// Language is the dictionary language.
	Language string

	// Now returns the publication date. time.Now is used if nil.
	Now func() time.Time

	// Logger receives progress messages. Messages are discarded if nil.
	Logger *slog.Logger
}

// DefaultOptions is the default options for an export run.
var DefaultOptions = &Options{
	Name:     DefaultName,
	Language: mobi.DefaultLanguage,
}

// Result summarizes an export run.
type Result struct {
	// Entries is the number of entries read from the source.
	Entries int

	// Duplicates is the number of entries written a second time with cedilla
	// letters.
	Duplicates int

	// Partitions are the partition documents created by the run in the order
	// they were created.
	Partitions []mobi.Part

	// OPF is the path of the package descriptor.
	OPF string

	// TOC is the path of the table of contents.
	TOC string
}

// OPFPath returns the path of the package descriptor for the output name.
func OPFPath(name string) string {
	return name + ".opf"
}

// TOCPath returns the path of the table of contents for the output name.
func TOCPath(name string) string {
	return name + "-toc.html"
}

// Export writes the entries read from r as Mobipocket dictionary source
// files. Files left over from a previous run with the same output name are
// removed first.
//
// Export returns ErrEmptyResultSet without creating any file if r has no
// entries. Files already written are left in place if the run fails.
func Export(ctx context.Context, r source.Reader, opts *Options) (*Result, error) {
	o := withDefaults(opts)

	if err := RemoveOutputs(o.Name); err != nil {
		return nil, err
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

	desc := mobi.NewDescriptor(mobi.Metadata{
		Title:      o.Title,
		Identifier: o.Identifier,
		Language:   o.Language,
		Now:        o.Now,
	})
	parts := mobi.NewPartitioner(o.Name, desc, o.Logger)

	res, err := export(ctx, r, s, parts, o.Logger)
	if err != nil {
		_ = parts.Close()
		return nil, err
	}
	if err := parts.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPartitionIO, err)
	}

	res.Partitions = desc.Parts()
	res.OPF = OPFPath(o.Name)
	res.TOC = TOCPath(o.Name)

	err = writeFile(res.OPF, func(w io.Writer) error {
		return desc.WriteOPF(w, filepath.Base(res.TOC))
	})
	if err != nil {
		return nil, err
	}
	if err := writeFile(res.TOC, desc.WriteTOC); err != nil {
		return nil, err
	}

	o.Logger.Info("export complete",
		"entries", res.Entries,
		"duplicates", res.Duplicates,
		"partitions", len(res.Partitions),
		"opf", res.OPF,
	)
	return res, nil
}

// export renders the entries of s starting with the current one.
func export(ctx context.Context, r source.Reader, s source.Scanner, parts *mobi.Partitioner, logger *slog.Logger) (*Result, error) {
	var (
		res      Result
		renderer mobi.Renderer
	)
	for ok := true; ok; ok = s.Scan() {
		e := s.Entry()

		w, err := parts.Select(e.Term)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPartitionIO, err)
		}

		forms, err := r.Inflections(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}

		n, err := renderer.Render(w, e, forms)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPartitionIO, err)
		}

		res.Entries++
		res.Duplicates += n - 1
		logger.Debug("exported entry", "term", e.Term, "partition", parts.Current())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return &res, nil
}

func withDefaults(opts *Options) Options {
	if opts == nil {
		opts = DefaultOptions
	}
	o := *opts
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Title == "" {
		o.Title = filepath.Base(o.Name)
	}
	if o.Language == "" {
		o.Language = mobi.DefaultLanguage
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// writeFile creates the file at path and writes it with write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %q: %w", ErrPartitionIO, path, err)
	}

	w := bufio.NewWriter(f)
	err = write(w)
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: writing %q: %w", ErrPartitionIO, path, err)
	}
	return nil
}

// OutputFiles returns the existing output files for the output name: the
// partition documents, the table of contents and the package descriptor.
func OutputFiles(name string) ([]string, error) {
	files, err := partitionFiles(name)
	if err != nil {
		return nil, err
	}
	for _, path := range []string{TOCPath(name), OPFPath(name)} {
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	return files, nil
}

// RemoveOutputs removes the output files for the output name. Files that do
// not exist are ignored.
func RemoveOutputs(name string) error {
	files, err := partitionFiles(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCleanup, err)
	}
	files = append(files, TOCPath(name), OPFPath(name))
	for _, path := range files {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrCleanup, err)
		}
	}
	return nil
}

// partitionFiles returns the existing partition documents for the output
// name. Partition keys are a single character.
func partitionFiles(name string) ([]string, error) {
	files, err := filepath.Glob(escapeGlob(name) + "?.html")
	if err != nil {
		return nil, fmt.Errorf("listing partitions of %q: %w", name, err)
	}
	return files, nil
}

// escapeGlob escapes the pattern metacharacters in s.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '*' || r == '?' || r == '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		case r == '\\' && runtime.GOOS != "windows":
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
