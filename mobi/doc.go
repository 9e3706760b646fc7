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

// Package mobi writes dictionary entries as Mobipocket dictionary source
// files: partition documents holding the entries, a table of contents and an
// OPF package descriptor. The descriptor can be compiled into a .mobi file by
// kindlegen or mobigen.
//
// Entries are partitioned by the first letter of their term. Each partition is
// written to its own document and listed in the descriptor's manifest and
// spine and in the table of contents.
//
// Romanian text uses letters with a comma below (ș, ț) but Kindle fonts
// render them as letters with a cedilla (ş, ţ). Dictionary lookups are exact
// string matches, so every entry whose term contains a comma letter is
// written a second time spelled with cedilla letters.
package mobi
