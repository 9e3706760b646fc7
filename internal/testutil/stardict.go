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

package testutil

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"
	"strings"
	"testing"
)

// IdxWord is an entry of a .idx file.
type IdxWord struct {
	Word   string
	Offset uint32
	Size   uint32
}

// SynWord is an entry of a .syn file.
type SynWord struct {
	Word  string
	Index uint32
}

// splitWords returns a split function for zero terminated words followed by
// n bytes of data.
func splitWords(n int) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.IndexByte(data, 0); i >= 0 {
			tokenSize := i + 1 + n
			if len(data) >= tokenSize {
				return tokenSize, data[:tokenSize], nil
			}
		}
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}
		// Request more data.
		return 0, nil, nil
	}
}

func scanWords(t *testing.T, path string, n int, f func(word string, data []byte)) {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	s := bufio.NewScanner(bytes.NewReader(b))
	s.Split(splitWords(n))
	for s.Scan() {
		tok := s.Bytes()
		i := bytes.IndexByte(tok, 0)
		f(string(tok[:i]), tok[i+1:])
	}
	if err := s.Err(); err != nil {
		t.Fatalf("scanning %q: %v", path, err)
	}
}

// ReadIdx reads a .idx file with 32-bit offsets.
func ReadIdx(t *testing.T, path string) []IdxWord {
	t.Helper()

	var words []IdxWord
	scanWords(t, path, 8, func(word string, data []byte) {
		words = append(words, IdxWord{
			Word:   word,
			Offset: binary.BigEndian.Uint32(data[:4]),
			Size:   binary.BigEndian.Uint32(data[4:]),
		})
	})
	return words
}

// ReadSyn reads a .syn file.
func ReadSyn(t *testing.T, path string) []SynWord {
	t.Helper()

	var words []SynWord
	scanWords(t, path, 4, func(word string, data []byte) {
		words = append(words, SynWord{
			Word:  word,
			Index: binary.BigEndian.Uint32(data),
		})
	})
	return words
}

// ReadIfo reads the key value pairs of an .ifo file. The magic line is
// returned with the empty key.
func ReadIfo(t *testing.T, path string) map[string]string {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	ifo := map[string]string{}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	ifo[""] = lines[0]
	for _, line := range lines[1:] {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("invalid .ifo line: %q", line)
		}
		ifo[k] = v
	}
	return ifo
}

// ReadDict reads the article data of a .dict file. Files ending in .dz are
// decompressed.
func ReadDict(t *testing.T, path string) []byte {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".dz") {
		// dictzip files are valid gzip files.
		z, err := gzip.NewReader(f)
		if err != nil {
			t.Fatalf("gzip.NewReader: %v", err)
		}
		defer z.Close()
		r = z
	}

	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return b
}
