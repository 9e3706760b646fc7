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

// Package prompt implements the interactive questions asked before an
// export.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter asks questions on an output and reads the answers from an input.
// Every question has a default answer that is used when the answer is empty.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal file descriptor of the input or -1.
	fd int
}

// New returns a new Prompter. If in is a terminal passwords are read without
// echo.
func New(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		fd:  fd,
	}
}

// readLine reads a line without the line ending. io.EOF is returned only if
// no input was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		//nolint:wrapcheck // wrapped by the caller
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask asks for a string. def is shown in brackets and returned if the answer
// is empty.
func (p *Prompter) Ask(label, def string) (string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	line, err := p.readLine()
	if errors.Is(err, io.EOF) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", label, err)
	}
	if line = strings.TrimSpace(line); line == "" {
		return def, nil
	}
	return line, nil
}

// AskInt asks for a number. def is returned if the answer is empty.
func (p *Prompter) AskInt(label string, def int) (int, error) {
	for {
		s, err := p.Ask(label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(p.out, "%q is not a number\n", s)
	}
}

// Password asks for a password. The answer is not echoed if the input is a
// terminal. def is returned if the answer is empty and is never shown.
func (p *Prompter) Password(label, def string) (string, error) {
	fmt.Fprintf(p.out, "%s []: ", label)

	var (
		line string
		err  error
	)
	if p.fd >= 0 {
		var b []byte
		b, err = term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		line = string(b)
	} else {
		line, err = p.readLine()
	}
	if errors.Is(err, io.EOF) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", label, err)
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm asks a yes or no question. The default answer is shown in upper
// case. Unrecognized answers are asked again.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	choices := "y/N"
	if def {
		choices = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s [%s]: ", label, choices)
		line, err := p.readLine()
		if errors.Is(err, io.EOF) {
			return def, nil
		}
		if err != nil {
			return false, fmt.Errorf("reading %s: %w", label, err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// Wait prints msg and waits for the Enter key.
func (p *Prompter) Wait(msg string) error {
	fmt.Fprint(p.out, msg)
	if _, err := p.readLine(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("waiting for input: %w", err)
	}
	return nil
}
