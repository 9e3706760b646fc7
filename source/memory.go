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

package source

import (
	"context"
)

// Memory is a Reader over entries held in memory. Entries are returned in the
// order they were given.
type Memory struct {
	entries []*Entry
	forms   map[int64][]string
}

// NewMemory returns a new Memory reader. forms maps entry IDs to their
// inflected forms.
func NewMemory(entries []*Entry, forms map[int64][]string) *Memory {
	return &Memory{
		entries: entries,
		forms:   forms,
	}
}

// Entries implements [Reader.Entries].
func (m *Memory) Entries(_ context.Context) (Scanner, error) {
	return &sliceScanner{entries: m.entries, i: -1}, nil
}

// Inflections implements [Reader.Inflections].
func (m *Memory) Inflections(_ context.Context, id int64) ([]string, error) {
	var forms []string
	seen := map[string]bool{}
	for _, f := range m.forms[id] {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		forms = append(forms, f)
	}
	return forms, nil
}

type sliceScanner struct {
	entries []*Entry
	i       int
}

func (s *sliceScanner) Scan() bool {
	if s.i+1 >= len(s.entries) {
		s.i = len(s.entries)
		return false
	}
	s.i++
	return true
}

func (s *sliceScanner) Entry() *Entry {
	if s.i < 0 || s.i >= len(s.entries) {
		return nil
	}
	return s.entries[s.i]
}

func (*sliceScanner) Err() error {
	return nil
}

func (*sliceScanner) Close() error {
	return nil
}
