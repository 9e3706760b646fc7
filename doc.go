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

// Package dex2xml converts the DEXonline dictionary database into Mobipocket
// dictionary source files that can be compiled into a Kindle dictionary.
//
// An export run produces the following files, named after a common output
// name:
//  1. One partition document per first letter of the exported terms, e.g.
//     DEXonlineA.html. Each holds the index entries for its terms.
//  2. A table of contents linking to the partition documents,
//     DEXonline-toc.html.
//  3. An OPF package descriptor listing all of the documents, DEXonline.opf.
//     The descriptor is the input of the kindlegen packaging tool.
//
// The same entries can also be written as a StarDict dictionary.
//
// More info on the Kindle dictionary format can be found in the Amazon Kindle
// Publishing Guidelines.
package dex2xml
