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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ianlewis/go-dex2xml/internal/packager"
)

// DefaultTool is the default packaging tool.
const DefaultTool = "kindlegen"

// PackageOptions are options for packaging an exported dictionary.
type PackageOptions struct {
	// Tool is the name or path of the packaging tool.
	Tool string

	// Args are extra arguments passed to the tool.
	Args []string

	// Output receives the tool's output. It may be nil.
	Output io.Writer

	// Logger receives progress messages. Messages are discarded if nil.
	Logger *slog.Logger
}

// Package compiles the package descriptor at opf into a Kindle dictionary
// using an external tool.
//
// Package returns ErrToolUnavailable if the tool is not installed and
// ErrToolFailed if the tool fails. The exported files are not modified in
// either case.
func Package(ctx context.Context, opf string, opts *PackageOptions) error {
	if opts == nil {
		opts = &PackageOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	name := opts.Tool
	if name == "" {
		name = DefaultTool
	}

	tool := &packager.Tool{
		Path:   name,
		Args:   opts.Args,
		Output: opts.Output,
	}

	logger.Info("packaging dictionary", "tool", name, "opf", opf)
	res, err := tool.Run(ctx, opf)
	switch {
	case errors.Is(err, packager.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrToolUnavailable, err)
	case err != nil:
		return fmt.Errorf("%w: %w", ErrToolFailed, err)
	}

	if res.Warnings {
		logger.Warn("packaging tool reported warnings", "tool", name, "exit_code", res.ExitCode)
	}
	return nil
}
