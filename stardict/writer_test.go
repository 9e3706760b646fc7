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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-dex2xml/internal/testutil"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		a, b string
		sign int
	}{
		"equal":        {a: "abac", b: "abac", sign: 0},
		"less":         {a: "abac", b: "baba", sign: -1},
		"fold less":    {a: "abac", b: "Baba", sign: -1},
		"fold greater": {a: "Baba", b: "abac", sign: 1},
		"case tie":     {a: "Abac", b: "abac", sign: -1},
		"prefix":       {a: "aba", b: "abac", sign: -1},
		"non-ASCII":    {a: "ăsta", b: "zebră", sign: 1},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := compare(tc.a, tc.b)
			switch {
			case got < 0:
				got = -1
			case got > 0:
				got = 1
			}
			if got != tc.sign {
				t.Errorf("compare(%q, %q): got: %d, want: %d", tc.a, tc.b, got, tc.sign)
			}
		})
	}
}

func writeTestDict(t *testing.T, opts *Options) *Writer {
	t.Helper()

	w, err := Create(filepath.Join(t.TempDir(), "DEXonline"), opts)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, a := range []struct {
		word     string
		article  string
		synonyms []string
	}{
		{"baba", "<b>baba</b>", []string{"babe", "baba", "", "babe"}},
		{"Abac", "abac art", []string{"abace"}},
		{"abac", "second", nil},
	} {
		if err := w.Add(a.word, []byte(a.article), a.synonyms...); err != nil {
			t.Fatalf("Add(%q): %v", a.word, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return w
}

func TestWriter(t *testing.T) {
	t.Parallel()

	w := writeTestDict(t, &Options{
		Bookname:    "DEXonline",
		Author:      "dexonline.ro",
		Description: "Dicționarul\nexplicativ",
		Date:        time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC),
	})

	wantIdx := []testutil.IdxWord{
		{Word: "Abac", Offset: 11, Size: 8},
		{Word: "abac", Offset: 19, Size: 6},
		{Word: "baba", Offset: 0, Size: 11},
	}
	if diff := cmp.Diff(wantIdx, testutil.ReadIdx(t, w.IdxPath())); diff != "" {
		t.Errorf(".idx (-want, +got):\n%s", diff)
	}

	wantSyn := []testutil.SynWord{
		{Word: "abace", Index: 0},
		{Word: "babe", Index: 2},
	}
	if diff := cmp.Diff(wantSyn, testutil.ReadSyn(t, w.SynPath())); diff != "" {
		t.Errorf(".syn (-want, +got):\n%s", diff)
	}

	wantIfo := map[string]string{
		"":                 "StarDict's dict ifo file",
		"version":          "2.4.2",
		"bookname":         "DEXonline",
		"wordcount":        "3",
		"synwordcount":     "2",
		"idxfilesize":      "39",
		"author":           "dexonline.ro",
		"description":      "Dicționarul explicativ",
		"date":             "2025.03.04",
		"sametypesequence": "h",
	}
	if diff := cmp.Diff(wantIfo, testutil.ReadIfo(t, w.IfoPath())); diff != "" {
		t.Errorf(".ifo (-want, +got):\n%s", diff)
	}

	if diff := cmp.Diff("<b>baba</b>abac artsecond", string(testutil.ReadDict(t, w.DictPath()))); diff != "" {
		t.Errorf(".dict (-want, +got):\n%s", diff)
	}
}

func TestWriter_dictZip(t *testing.T) {
	t.Parallel()

	w := writeTestDict(t, &Options{Bookname: "DEXonline", DictZip: true})

	if !strings.HasSuffix(w.DictPath(), ".dict.dz") {
		t.Errorf("DictPath: got: %q, want suffix .dict.dz", w.DictPath())
	}
	if diff := cmp.Diff("<b>baba</b>abac artsecond", string(testutil.ReadDict(t, w.DictPath()))); diff != "" {
		t.Errorf(".dict.dz (-want, +got):\n%s", diff)
	}
}

func TestWriter_noSynonyms(t *testing.T) {
	t.Parallel()

	w, err := Create(filepath.Join(t.TempDir(), "DEXonline"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Add("abac", []byte("abac")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := os.Stat(w.SynPath()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Stat(%q): got: %v, want: %v", w.SynPath(), err, os.ErrNotExist)
	}
	if _, ok := testutil.ReadIfo(t, w.IfoPath())["synwordcount"]; ok {
		t.Errorf(".ifo: unexpected synwordcount")
	}
}

func TestWriter_Add_invalid(t *testing.T) {
	t.Parallel()

	w, err := Create(filepath.Join(t.TempDir(), "DEXonline"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })

	for _, word := range []string{"", strings.Repeat("a", 256), "a\x00b"} {
		if err := w.Add(word, []byte("article")); !errors.Is(err, ErrInvalidWord) {
			t.Errorf("Add(%q): got: %v, want: %v", word, err, ErrInvalidWord)
		}
	}
	if got, want := w.WordCount(), 0; got != want {
		t.Errorf("WordCount: got: %d, want: %d", got, want)
	}
}

func TestWriter_Add_closed(t *testing.T) {
	t.Parallel()

	w, err := Create(filepath.Join(t.TempDir(), "DEXonline"), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := w.Add("abac", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Add: got: %v, want: %v", err, ErrClosed)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
