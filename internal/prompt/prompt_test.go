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

package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrompter_Ask(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input    string
		expected string
	}{
		"answer":        {input: "db.example.com\n", expected: "db.example.com"},
		"crlf":          {input: "db.example.com\r\n", expected: "db.example.com"},
		"no line end":   {input: "db.example.com", expected: "db.example.com"},
		"empty":         {input: "\n", expected: "localhost"},
		"spaces":        {input: "  \n", expected: "localhost"},
		"end of input":  {input: "", expected: "localhost"},
		"trimmed space": {input: " db \n", expected: "db"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			p := New(strings.NewReader(tc.input), &out)
			got, err := p.Ask("Server", "localhost")
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("Ask (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff("Server [localhost]: ", out.String()); diff != "" {
				t.Errorf("prompt (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestPrompter_AskInt(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := New(strings.NewReader("abc\n3307\n"), &out)
	got, err := p.AskInt("Port", 3306)
	if err != nil {
		t.Fatalf("AskInt: %v", err)
	}
	if got != 3307 {
		t.Errorf("AskInt: got: %d, want: %d", got, 3307)
	}
	if want := "Port [3306]: \"abc\" is not a number\nPort [3306]: "; out.String() != want {
		t.Errorf("prompt: got: %q, want: %q", out.String(), want)
	}
}

func TestPrompter_Password(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := New(strings.NewReader("secret\n\n"), &out)

	got, err := p.Password("Password", "default")
	if err != nil {
		t.Fatalf("Password: %v", err)
	}
	if got != "secret" {
		t.Errorf("Password: got: %q, want: %q", got, "secret")
	}

	// The default is used but never shown.
	got, err = p.Password("Password", "default")
	if err != nil {
		t.Fatalf("Password: %v", err)
	}
	if got != "default" {
		t.Errorf("Password: got: %q, want: %q", got, "default")
	}
	if strings.Contains(out.String(), "default") {
		t.Errorf("prompt shows the default: %q", out.String())
	}
}

func TestPrompter_Confirm(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input    string
		def      bool
		expected bool
		prompt   string
	}{
		"yes": {
			input:    "y\n",
			expected: true,
			prompt:   "Continue [y/N]: ",
		},
		"YES": {
			input:    "YES\n",
			expected: true,
			prompt:   "Continue [y/N]: ",
		},
		"no": {
			input:    "n\n",
			def:      true,
			expected: false,
			prompt:   "Continue [Y/n]: ",
		},
		"default no": {
			input:    "\n",
			expected: false,
			prompt:   "Continue [y/N]: ",
		},
		"default yes": {
			input:    "\n",
			def:      true,
			expected: true,
			prompt:   "Continue [Y/n]: ",
		},
		"asked again": {
			input:    "maybe\ny\n",
			expected: true,
			prompt:   "Continue [y/N]: Continue [y/N]: ",
		},
		"end of input": {
			input:    "maybe\n",
			def:      true,
			expected: true,
			prompt:   "Continue [Y/n]: Continue [Y/n]: ",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			p := New(strings.NewReader(tc.input), &out)
			got, err := p.Confirm("Continue", tc.def)
			if err != nil {
				t.Fatalf("Confirm: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Confirm: got: %v, want: %v", got, tc.expected)
			}
			if diff := cmp.Diff(tc.prompt, out.String()); diff != "" {
				t.Errorf("prompt (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestPrompter_Wait(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := New(strings.NewReader("\nnext\n"), &out)
	if err := p.Wait("Press Enter to exit..."); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	// Only one line is consumed.
	got, err := p.Ask("Next", "")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got != "next" {
		t.Errorf("Ask: got: %q, want: %q", got, "next")
	}
}
