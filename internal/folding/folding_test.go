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

package folding

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"
)

func TestToCedilla(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "no diacritics",
			input:    "abac",
			expected: "abac",
		},
		{
			name:     "lowercase t comma",
			input:    "țară",
			expected: "ţară",
		},
		{
			name:     "all four letters",
			input:    "ȘșȚț",
			expected: "ŞşŢţ",
		},
		{
			name:     "cedilla passes through",
			input:    "şţ",
			expected: "şţ",
		},
		{
			name:     "invalid utf-8 passes through",
			input:    "a\xff\u0219",
			expected: "a\xff\u015f",
		},
		{
			name:     "truncated rune passes through",
			input:    "\u021b\xc8",
			expected: "\u0163\xc8",
		},
		{
			name:     "other romanian letters untouched",
			input:    "ăâîș",
			expected: "ăâîş",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, ToCedilla(test.input)); diff != "" {
				t.Fatalf("ToCedilla (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestToCedilla_idempotent(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Ș", "șț", "ȚȚȘ", "știință"} {
		once := ToCedilla(s)
		if diff := cmp.Diff(once, ToCedilla(once)); diff != "" {
			t.Errorf("ToCedilla(ToCedilla(%q)) (-want, +got):\n%s", s, diff)
		}
		if HasComma(once) {
			t.Errorf("HasComma(ToCedilla(%q)) = true", s)
		}
	}
}

func TestCedilla_transformer(t *testing.T) {
	t.Parallel()

	// Long enough to span multiple transform buffers.
	input := strings.Repeat("șaț", 4096)
	expected := strings.Repeat("şaţ", 4096)

	got, _, err := transform.String(Cedilla(), input)
	if err != nil {
		t.Fatalf("transform.String: %v", err)
	}
	if got != expected {
		t.Fatalf("transform.String: unexpected output of length %d", len(got))
	}
}

func TestHasComma(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"abac", false},
		{"şa", false},
		{"ţară", false},
		{"Ș", true},
		{"aș", true},
		{"Țar", true},
		{"arț", true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			if got := HasComma(test.input); got != test.expected {
				t.Fatalf("HasComma(%q): want %v, got %v", test.input, test.expected, got)
			}
		})
	}
}

func TestWithVariants(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    []string
		expected []string
	}{
		"nil": {
			input:    nil,
			expected: nil,
		},
		"no comma": {
			input:    []string{"babe", "babei"},
			expected: []string{"babe", "babei"},
		},
		"comma": {
			input:    []string{"\u021Bări", "babe"},
			expected: []string{"\u021Bări", "\u0163ări", "babe"},
		},
		"empty": {
			input:    []string{"", "babe", ""},
			expected: []string{"babe"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, WithVariants(test.input)); diff != "" {
				t.Errorf("WithVariants (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestStripLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "no newlines",
			input:    "<p>def</p>",
			expected: "<p>def</p>",
		},
		{
			name:     "unix newlines",
			input:    "<p>\ndef\n</p>\n",
			expected: "<p>def</p>",
		},
		{
			name:     "windows newlines",
			input:    "<b>a</b>\r\n<i>b</i>",
			expected: "<b>a</b><i>b</i>",
		},
		{
			name:     "spaces kept",
			input:    "a \n b",
			expected: "a  b",
		},
		{
			name:     "multibyte",
			input:    "ș\nț",
			expected: "șț",
		},
		{
			name:     "invalid utf8 passes through",
			input:    "a\xff\nb",
			expected: "a\xffb",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, StripLines(test.input)); diff != "" {
				t.Fatalf("StripLines (-want, +got):\n%s", diff)
			}
		})
	}
}
