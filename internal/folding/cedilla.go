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

// Package folding implements text transformations applied to dictionary terms
// and definitions before they are exported.
package folding

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// cedillaMap maps the Romanian comma-below letters to the cedilla letters
// rendered by e-reader fonts.
var cedillaMap = map[rune]rune{
	'\u0218': '\u015E', // Ș -> Ş
	'\u0219': '\u015F', // ș -> ş
	'\u021A': '\u0162', // Ț -> Ţ
	'\u021B': '\u0163', // ț -> ţ
}

// commaLetters is the set of comma-below letters in cedillaMap.
const commaLetters = "\u0218\u0219\u021A\u021B"

// Cedilla returns a [transform.Transformer] that replaces comma-below letters
// with their cedilla equivalents. All other bytes, including invalid UTF-8,
// are passed through.
func Cedilla() transform.Transformer {
	return cedillaFolder{}
}

type cedillaFolder struct{}

func (cedillaFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if c, ok := cedillaMap[r]; ok {
			if nDst+utf8.RuneLen(c) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += utf8.EncodeRune(dst[nDst:], c)
			nSrc += size
			continue
		}

		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}

func (cedillaFolder) Reset() {}

// ToCedilla returns s with every comma-below letter replaced by the
// corresponding cedilla letter.
func ToCedilla(s string) string {
	if !HasComma(s) {
		return s
	}
	//nolint:errcheck // cedillaFolder never returns an error.
	out, _, _ := transform.String(Cedilla(), s)
	return out
}

// HasComma reports whether s contains at least one comma-below letter.
func HasComma(s string) bool {
	return strings.ContainsAny(s, commaLetters)
}

// WithVariants returns words with the cedilla spelling of each word that
// contains comma-below letters inserted after it. Empty words are dropped.
func WithVariants(words []string) []string {
	var out []string
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, w)
		if HasComma(w) {
			out = append(out, ToCedilla(w))
		}
	}
	return out
}
