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
	"fmt"
	"io"

	"github.com/ianlewis/go-dex2xml/internal/folding"
	"github.com/ianlewis/go-dex2xml/source"
)

// entryView is the data passed to the entry template.
type entryView struct {
	// Term is the headword shown and indexed for the entry.
	Term string

	// Key is the lookup key of the entry.
	Key string

	// Forms are the inflected forms the entry can also be found by.
	Forms []string

	// Definition is the definition markup. It is written unescaped.
	Definition string

	// Source is the label of the dictionary the definition comes from.
	Source string
}

// Renderer writes dictionary entries as Mobipocket index entries.
type Renderer struct{}

// Render writes the entry e to w followed by a page break. forms are the
// inflected forms of the entry's term. Forms containing comma-below letters
// are also listed spelled with cedilla letters.
//
// If the term itself contains comma-below letters a second entry is written
// using the cedilla spelling of the term as its headword and key. The cedilla
// term is also listed as an inflected form of the second entry.
//
// Render returns the number of entries written, one or two.
func (Renderer) Render(w io.Writer, e *source.Entry, forms []string) (int, error) {
	values := folding.WithVariants(forms)

	views := []entryView{{
		Term:       e.Term,
		Key:        e.Term,
		Forms:      values,
		Definition: e.Definition,
		Source:     e.Source,
	}}

	if folding.HasComma(e.Term) {
		cedilla := folding.ToCedilla(e.Term)
		dupForms := make([]string, 0, len(values)+1)
		dupForms = append(dupForms, values...)
		dupForms = append(dupForms, cedilla)
		views = append(views, entryView{
			Term:       cedilla,
			Key:        cedilla,
			Forms:      dupForms,
			Definition: e.Definition,
			Source:     e.Source,
		})
	}

	for i := range views {
		if err := entryTemplate.Execute(w, &views[i]); err != nil {
			return i, fmt.Errorf("writing entry %q: %w", views[i].Term, err)
		}
	}
	return len(views), nil
}
