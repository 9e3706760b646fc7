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
	"io"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
)

// MobiEntry is an index entry read back from a partition document.
type MobiEntry struct {
	Term   string
	Key    string
	Forms  []string
	Source string
}

// ParseXML parses an XML document and fails the test on error.
func ParseXML(t *testing.T, r io.Reader) *xmlquery.Node {
	t.Helper()

	doc, err := xmlquery.Parse(r)
	if err != nil {
		t.Fatalf("xmlquery.Parse: %v", err)
	}
	return doc
}

// MobiEntries parses a partition document and returns its index entries in
// document order.
func MobiEntries(t *testing.T, r io.Reader) []MobiEntry {
	t.Helper()

	doc := ParseXML(t, r)

	var entries []MobiEntry
	for _, n := range xmlquery.Find(doc, "//*[local-name()='entry']") {
		var e MobiEntry
		if orth := xmlquery.FindOne(n, ".//*[local-name()='orth']"); orth != nil {
			for c := orth.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
					e.Term += c.Data
				}
			}
			e.Term = strings.TrimSpace(e.Term)
		}
		if k := xmlquery.FindOne(n, ".//*[local-name()='key']"); k != nil {
			e.Key = k.SelectAttr("key")
		}
		for _, f := range xmlquery.Find(n, ".//*[local-name()='iform']") {
			e.Forms = append(e.Forms, f.SelectAttr("value"))
		}
		// The source label is the last bold italic text of the entry.
		if s := xmlquery.Find(n, ".//b/i"); len(s) > 0 {
			e.Source = s[len(s)-1].InnerText()
		}
		entries = append(entries, e)
	}
	return entries
}
