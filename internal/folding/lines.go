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
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// LineStripper removes line breaks from the input. Definition markup is stored
// with embedded newlines which would otherwise break the one-entry-per-block
// layout of exported documents.
type LineStripper struct{}

// Transform implements [transform.Transformer.Transform].
func (LineStripper) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		c, size := utf8.DecodeRune(src[nSrc:])

		if c == '\n' || c == '\r' {
			nSrc += size
			continue
		}

		// NOTE: copy the source bytes rather than re-encoding c so that
		// invalid UTF-8 in stored markup is passed through untouched.
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (LineStripper) Reset() {}

// StripLines returns s with all carriage returns and line feeds removed.
func StripLines(s string) string {
	//nolint:errcheck // LineStripper never returns an error.
	out, _, _ := transform.String(LineStripper{}, s)
	return out
}
