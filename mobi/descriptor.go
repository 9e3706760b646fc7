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
	"time"

	"github.com/google/uuid"
)

// DefaultLanguage is the language of Romanian dictionaries.
const DefaultLanguage = "ro"

// coverHref is the cover image expected next to the package descriptor.
const coverHref = "cover.jpg"

// Metadata is the metadata written to the package descriptor.
type Metadata struct {
	// Title is the title of the dictionary.
	Title string

	// Identifier is the unique identifier of the package. A random UUID is
	// used if empty.
	Identifier string

	// Language is the language of the dictionary's terms and definitions.
	// DefaultLanguage is used if empty.
	Language string

	// Now returns the publication date. time.Now is used if nil.
	Now func() time.Time
}

// Part is a partition document listed in the package descriptor.
type Part struct {
	// Key is the partition key, the upper-cased first letter of the terms
	// in the partition.
	Key string

	// Href is the path of the partition document relative to the
	// descriptor.
	Href string

	// ID is the manifest item ID of the partition document.
	ID string
}

// Descriptor builds the OPF package descriptor and the table of contents for
// a set of partition documents.
type Descriptor struct {
	meta  Metadata
	parts []Part
}

// NewDescriptor returns a new Descriptor with no parts.
func NewDescriptor(meta Metadata) *Descriptor {
	if meta.Identifier == "" {
		meta.Identifier = uuid.NewString()
	}
	if meta.Language == "" {
		meta.Language = DefaultLanguage
	}
	if meta.Now == nil {
		meta.Now = time.Now
	}
	return &Descriptor{meta: meta}
}

// Add registers the partition document at href with the key. Parts are listed
// in the order they are added.
func (d *Descriptor) Add(key, href string) Part {
	p := Part{
		Key:  key,
		Href: href,
		ID:   fmt.Sprintf("dictionary%d", len(d.parts)),
	}
	d.parts = append(d.parts, p)
	return p
}

// Parts returns the registered parts in order.
func (d *Descriptor) Parts() []Part {
	return append([]Part(nil), d.parts...)
}

// Identifier returns the package's unique identifier.
func (d *Descriptor) Identifier() string {
	return d.meta.Identifier
}

// WriteOPF writes the package descriptor to w. tocHref is the path of the
// table of contents relative to the descriptor.
func (d *Descriptor) WriteOPF(w io.Writer, tocHref string) error {
	err := opfTemplate.Execute(w, struct {
		Metadata
		Date  string
		Cover string
		TOC   string
		Parts []Part
	}{
		Metadata: d.meta,
		Date:     d.meta.Now().Format(time.DateOnly),
		Cover:    coverHref,
		TOC:      tocHref,
		Parts:    d.parts,
	})
	if err != nil {
		return fmt.Errorf("writing package descriptor: %w", err)
	}
	return nil
}

// WriteTOC writes the table of contents to w. It links to every registered
// part labeled by its key.
func (d *Descriptor) WriteTOC(w io.Writer) error {
	err := tocTemplate.Execute(w, struct {
		Title string
		Parts []Part
	}{
		Title: d.meta.Title,
		Parts: d.parts,
	})
	if err != nil {
		return fmt.Errorf("writing table of contents: %w", err)
	}
	return nil
}
