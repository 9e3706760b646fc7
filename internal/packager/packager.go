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

// Package packager runs an external tool that compiles an OPF package
// descriptor into a Kindle dictionary.
package packager

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
)

var (
	// ErrNotFound indicates that the packaging tool is not installed.
	ErrNotFound = errors.New("packaging tool not found")

	// ErrFailed indicates that the packaging tool exited with an error.
	ErrFailed = errors.New("packaging tool failed")
)

// exitWarnings is the kindlegen exit code for a book built with warnings.
const exitWarnings = 1

// Result is the result of a packaging run.
type Result struct {
	// ExitCode is the exit code of the tool.
	ExitCode int

	// Warnings is true if the book was built but the tool reported
	// warnings.
	Warnings bool

	// Output is the combined standard output and standard error of the
	// tool.
	Output []byte
}

// Tool is a packaging tool such as kindlegen.
type Tool struct {
	// Path is the name or path of the tool executable.
	Path string

	// Args are extra arguments passed before the descriptor path, e.g.
	// "-c2" to request maximum compression.
	Args []string

	// Output receives the tool's output as it runs. It may be nil.
	Output io.Writer
}

// Run runs the tool on the package descriptor at opf. The tool is run in
// the descriptor's directory so that it writes the book next to it.
func (t *Tool) Run(ctx context.Context, opf string) (*Result, error) {
	path, err := exec.LookPath(t.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrNotFound, t.Path, err)
	}
	// The tool runs in the descriptor's directory, so a relative path must
	// be resolved against the current one first.
	if path, err = filepath.Abs(path); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrNotFound, t.Path, err)
	}

	args := append(append([]string(nil), t.Args...), filepath.Base(opf))
	//nolint:gosec // The tool path is configured by the user.
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = filepath.Dir(opf)

	var out bytes.Buffer
	var w io.Writer = &out
	if t.Output != nil {
		w = io.MultiWriter(&out, t.Output)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	res := &Result{}
	runErr := cmd.Run()
	res.Output = out.Bytes()

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr) && exitErr.ExitCode() == exitWarnings:
		res.ExitCode = exitWarnings
		res.Warnings = true
	case errors.As(runErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, fmt.Errorf("%w: %s exited with code %d", ErrFailed, t.Path, res.ExitCode)
	default:
		return res, fmt.Errorf("%w: running %s: %w", ErrFailed, t.Path, runErr)
	}
	return res, nil
}
