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

// Package source reads dictionary entries from a DEXonline style relational
// database.
//
// The database holds three things used for export:
//  1. Definitions: a headword (the lexicon), HTML formatted markup and a
//     status flag. Only active definitions (status 0) are exported.
//  2. Sources: the dictionaries definitions are taken from. Each definition
//     belongs to exactly one source.
//  3. Inflected forms: the alternate surface forms of the lexeme a
//     definition describes, linked through the full text index.
//
// Entries are read through a forward-only [Scanner] so that large databases
// can be exported without holding every definition in memory.
package source
