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

package dex2xml

import (
	"errors"
	"fmt"
)

// ErrDex2xml is the parent of all errors returned by an export run.
var ErrDex2xml = errors.New("dex2xml")

var (
	// ErrSourceUnavailable indicates that the entry source could not be
	// reached or queried.
	ErrSourceUnavailable = fmt.Errorf("%w: source unavailable", ErrDex2xml)

	// ErrEmptyResultSet indicates that there were no entries to export.
	ErrEmptyResultSet = fmt.Errorf("%w: no entries found", ErrDex2xml)

	// ErrPartitionIO indicates that an output file could not be opened,
	// written or closed.
	ErrPartitionIO = fmt.Errorf("%w: writing output", ErrDex2xml)

	// ErrCleanup indicates that a file left by a previous run could not be
	// removed.
	ErrCleanup = fmt.Errorf("%w: removing output", ErrDex2xml)

	// ErrToolUnavailable indicates that the packaging tool was not found.
	ErrToolUnavailable = fmt.Errorf("%w: packaging tool not found", ErrDex2xml)

	// ErrToolFailed indicates that the packaging tool reported a failure.
	ErrToolFailed = fmt.Errorf("%w: packaging failed", ErrDex2xml)
)
