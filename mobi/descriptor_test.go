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
	"bytes"
	"testing"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/ianlewis/go-dex2xml/internal/testutil"
)

func testDescriptor() *Descriptor {
	d := NewDescriptor(Metadata{
		Title:      "DEXonline",
		Identifier: "dex-test",
		Now: func() time.Time {
			return time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)
		},
	})
	d.Add("A", "DEXonlineA.html")
	d.Add("B", "DEXonlineB.html")
	return d
}

func attrs(nodes []*xmlquery.Node, name string) []string {
	var values []string
	for _, n := range nodes {
		values = append(values, n.SelectAttr(name))
	}
	return values
}

func TestDescriptor_WriteOPF(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	if err := testDescriptor().WriteOPF(&b, "DEXonline-toc.html"); err != nil {
		t.Fatalf("WriteOPF: %v", err)
	}
	doc := testutil.ParseXML(t, &b)

	metadata := map[string]string{}
	for _, name := range []string{"Identifier", "Title", "Language", "Date", "DictionaryInLanguage", "DictionaryOutLanguage"} {
		if n := xmlquery.FindOne(doc, "//*[local-name()='"+name+"']"); n != nil {
			metadata[name] = n.InnerText()
		}
	}
	wantMetadata := map[string]string{
		"Identifier":            "dex-test",
		"Title":                 "DEXonline",
		"Language":              "ro",
		"Date":                  "2025-03-04",
		"DictionaryInLanguage":  "ro",
		"DictionaryOutLanguage": "ro",
	}
	if diff := cmp.Diff(wantMetadata, metadata); diff != "" {
		t.Errorf("metadata (-want, +got):\n%s", diff)
	}

	items := xmlquery.Find(doc, "//manifest/item")
	if diff := cmp.Diff([]string{"cover", "toc", "dictionary0", "dictionary1"}, attrs(items, "id")); diff != "" {
		t.Errorf("manifest ids (-want, +got):\n%s", diff)
	}
	wantHrefs := []string{"cover.jpg", "DEXonline-toc.html", "DEXonlineA.html", "DEXonlineB.html"}
	if diff := cmp.Diff(wantHrefs, attrs(items, "href")); diff != "" {
		t.Errorf("manifest hrefs (-want, +got):\n%s", diff)
	}

	refs := xmlquery.Find(doc, "//spine/itemref")
	if diff := cmp.Diff([]string{"toc", "dictionary0", "dictionary1"}, attrs(refs, "idref")); diff != "" {
		t.Errorf("spine (-want, +got):\n%s", diff)
	}
}

func TestDescriptor_WriteOPF_noParts(t *testing.T) {
	t.Parallel()

	d := NewDescriptor(Metadata{Title: "DEXonline"})

	var b bytes.Buffer
	if err := d.WriteOPF(&b, "DEXonline-toc.html"); err != nil {
		t.Fatalf("WriteOPF: %v", err)
	}
	doc := testutil.ParseXML(t, &b)

	if got, want := len(xmlquery.Find(doc, "//manifest/item")), 2; got != want {
		t.Errorf("manifest items: got: %d, want: %d", got, want)
	}
	if got, want := len(xmlquery.Find(doc, "//spine/itemref")), 1; got != want {
		t.Errorf("spine items: got: %d, want: %d", got, want)
	}
}

func TestNewDescriptor_identifier(t *testing.T) {
	t.Parallel()

	d := NewDescriptor(Metadata{})
	if _, err := uuid.Parse(d.Identifier()); err != nil {
		t.Errorf("Identifier: %v", err)
	}
	if d.Identifier() == NewDescriptor(Metadata{}).Identifier() {
		t.Errorf("Identifier: generated identifiers are equal")
	}
}

func TestDescriptor_WriteTOC(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	if err := testDescriptor().WriteTOC(&b); err != nil {
		t.Fatalf("WriteTOC: %v", err)
	}
	doc := testutil.ParseXML(t, &b)

	links := xmlquery.Find(doc, "//*[local-name()='li']/*[local-name()='a']")
	if diff := cmp.Diff([]string{"DEXonlineA.html", "DEXonlineB.html"}, attrs(links, "href")); diff != "" {
		t.Errorf("hrefs (-want, +got):\n%s", diff)
	}

	var labels []string
	for _, n := range links {
		labels = append(labels, n.InnerText())
	}
	if diff := cmp.Diff([]string{"A", "B"}, labels); diff != "" {
		t.Errorf("labels (-want, +got):\n%s", diff)
	}

	if title := xmlquery.FindOne(doc, "//*[local-name()='h1']"); title == nil || title.InnerText() != "DEXonline" {
		t.Errorf("title: got: %v, want: %q", title, "DEXonline")
	}
}

func TestDescriptor_Parts_copy(t *testing.T) {
	t.Parallel()

	d := testDescriptor()
	parts := d.Parts()
	parts[0].Key = "Z"

	if got, want := d.Parts()[0].Key, "A"; got != want {
		t.Errorf("Parts: got: %q, want: %q", got, want)
	}
}
