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

package stardict

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ianlewis/go-dictzip"
)

const (
	magic   = "StarDict's dict ifo file"
	version = "2.4.2"

	// maxWordLen is the maximum length of a word in bytes.
	maxWordLen = 255
)

var (
	// ErrInvalidWord indicates that a headword can't be stored in the index.
	ErrInvalidWord = errors.New("invalid word")

	// ErrTooLarge indicates that the article data exceeds the 32-bit offsets
	// of the index.
	ErrTooLarge = errors.New("dictionary too large")

	// ErrClosed indicates that the Writer was already closed.
	ErrClosed = errors.New("writer closed")
)

// Options are options for a Writer.
type Options struct {
	// Bookname is the title of the dictionary.
	Bookname string

	// Author is the author of the dictionary.
	Author string

	// Email is the author's email address.
	Email string

	// Website is the dictionary's website.
	Website string

	// Description is a description of the dictionary.
	Description string

	// Date is the publication date. It is omitted if zero.
	Date time.Time

	// DictZip compresses the article data with dictzip.
	DictZip bool
}

type word struct {
	word   string
	offset uint64
	size   uint32
}

type synonym struct {
	word string

	// target is the position of the linked word in insertion order.
	target int
}

// Writer writes a StarDict dictionary. Articles are written to the .dict file
// as they are added. The index files are written when the Writer is closed.
type Writer struct {
	name string
	opts Options

	f *os.File
	z *dictzip.Writer
	w *bufio.Writer

	offset   uint64
	words    []word
	synonyms []synonym
	closed   bool
}

// Create creates the dictionary files named after name, which is the path of
// the dictionary without a file extension.
func Create(name string, opts *Options) (*Writer, error) {
	if opts == nil {
		opts = &Options{}
	}

	w := &Writer{
		name: name,
		opts: *opts,
	}

	f, err := os.Create(w.DictPath())
	if err != nil {
		return nil, fmt.Errorf("creating .dict file: %w", err)
	}
	w.f = f

	var dst io.Writer = f
	if opts.DictZip {
		z, err := dictzip.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("creating dictzip writer: %w", err)
		}
		w.z = z
		dst = z
	}
	w.w = bufio.NewWriter(dst)

	return w, nil
}

// DictPath returns the path of the .dict file.
func (w *Writer) DictPath() string {
	if w.opts.DictZip {
		return w.name + ".dict.dz"
	}
	return w.name + ".dict"
}

// IfoPath returns the path of the .ifo file.
func (w *Writer) IfoPath() string {
	return w.name + ".ifo"
}

// IdxPath returns the path of the .idx file.
func (w *Writer) IdxPath() string {
	return w.name + ".idx"
}

// SynPath returns the path of the .syn file.
func (w *Writer) SynPath() string {
	return w.name + ".syn"
}

// WordCount returns the number of headwords added.
func (w *Writer) WordCount() int {
	return len(w.words)
}

// SynWordCount returns the number of synonyms added.
func (w *Writer) SynWordCount() int {
	return len(w.synonyms)
}

// Add adds the article for headword. The synonyms will also find the article.
// Synonyms that are equal to the headword, repeated or can't be stored in
// the index are skipped.
func (w *Writer) Add(headword string, article []byte, synonyms ...string) error {
	if w.closed {
		return ErrClosed
	}
	if !validWord(headword) {
		return fmt.Errorf("%w: %q", ErrInvalidWord, headword)
	}
	if uint64(len(article)) > math.MaxUint32 || w.offset+uint64(len(article)) > math.MaxUint32 {
		return fmt.Errorf("%w: adding %q", ErrTooLarge, headword)
	}

	if _, err := w.w.Write(article); err != nil {
		return fmt.Errorf("writing article %q: %w", headword, err)
	}

	target := len(w.words)
	w.words = append(w.words, word{
		word:   headword,
		offset: w.offset,
		size:   uint32(len(article)),
	})
	w.offset += uint64(len(article))

	seen := map[string]bool{headword: true}
	for _, s := range synonyms {
		if seen[s] || !validWord(s) {
			continue
		}
		seen[s] = true
		w.synonyms = append(w.synonyms, synonym{word: s, target: target})
	}
	return nil
}

func validWord(s string) bool {
	return s != "" && len(s) <= maxWordLen && !strings.ContainsRune(s, 0)
}

// Close finishes the .dict file and writes the .idx, .syn and .ifo files.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.w.Flush()
	if w.z != nil {
		if zErr := w.z.Close(); err == nil {
			err = zErr
		}
	}
	if fErr := w.f.Close(); err == nil && !errors.Is(fErr, os.ErrClosed) {
		err = fErr
	}
	if err != nil {
		return fmt.Errorf("closing .dict file: %w", err)
	}

	// The index is sorted but synonyms refer to words in insertion order.
	order := make([]int, len(w.words))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compare(w.words[a].word, w.words[b].word)
	})
	position := make([]int, len(order))
	for pos, i := range order {
		position[i] = pos
	}

	idxSize, err := writeFile(w.IdxPath(), func(bw *bufio.Writer) error {
		b := make([]byte, 8)
		for _, i := range order {
			wd := w.words[i]
			binary.BigEndian.PutUint32(b[:4], uint32(wd.offset))
			binary.BigEndian.PutUint32(b[4:], wd.size)
			if err := writeWord(bw, wd.word, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("writing .idx file: %w", err)
	}

	if len(w.synonyms) > 0 {
		syns := slices.Clone(w.synonyms)
		slices.SortStableFunc(syns, func(a, b synonym) int {
			return compare(a.word, b.word)
		})
		_, err = writeFile(w.SynPath(), func(bw *bufio.Writer) error {
			b := make([]byte, 4)
			for _, s := range syns {
				//nolint:gosec // The word count is bounded by the 32-bit offsets.
				binary.BigEndian.PutUint32(b, uint32(position[s.target]))
				if err := writeWord(bw, s.word, b); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("writing .syn file: %w", err)
		}
	}

	if _, err := writeFile(w.IfoPath(), func(bw *bufio.Writer) error {
		return w.writeIfo(bw, idxSize)
	}); err != nil {
		return fmt.Errorf("writing .ifo file: %w", err)
	}
	return nil
}

func (w *Writer) writeIfo(bw *bufio.Writer, idxSize int64) error {
	lines := []string{
		magic,
		"version=" + version,
		"bookname=" + ifoValue(w.opts.Bookname),
		"wordcount=" + strconv.Itoa(len(w.words)),
	}
	if len(w.synonyms) > 0 {
		lines = append(lines, "synwordcount="+strconv.Itoa(len(w.synonyms)))
	}
	lines = append(lines, "idxfilesize="+strconv.FormatInt(idxSize, 10))

	for _, kv := range [][2]string{
		{"author", w.opts.Author},
		{"email", w.opts.Email},
		{"website", w.opts.Website},
		{"description", w.opts.Description},
	} {
		if kv[1] != "" {
			lines = append(lines, kv[0]+"="+ifoValue(kv[1]))
		}
	}
	if !w.opts.Date.IsZero() {
		lines = append(lines, "date="+w.opts.Date.Format("2006.01.02"))
	}
	lines = append(lines, "sametypesequence=h")

	for _, l := range lines {
		if _, err := bw.WriteString(l + "\n"); err != nil {
			//nolint:wrapcheck // wrapped by the caller
			return err
		}
	}
	return nil
}

// ifoValue returns s on a single line.
func ifoValue(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// writeWord writes the zero terminated word followed by data.
func writeWord(bw *bufio.Writer, s string, data []byte) error {
	if _, err := bw.WriteString(s); err != nil {
		//nolint:wrapcheck // wrapped by the caller
		return err
	}
	if err := bw.WriteByte(0); err != nil {
		//nolint:wrapcheck // wrapped by the caller
		return err
	}
	//nolint:wrapcheck // wrapped by the caller
	_, err := bw.Write(data)
	return err
}

// writeFile creates the file at path, writes it with write and returns its
// size.
func writeFile(path string, write func(*bufio.Writer) error) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		//nolint:wrapcheck // wrapped by the caller
		return 0, err
	}

	bw := bufio.NewWriter(f)
	err = write(bw)
	if err == nil {
		err = bw.Flush()
	}
	var size int64
	if err == nil {
		size, err = f.Seek(0, io.SeekCurrent)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	//nolint:wrapcheck // wrapped by the caller
	return size, err
}
