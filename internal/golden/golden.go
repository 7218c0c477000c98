// Copyright 2020-2025 Buf Technologies, Inc.
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

// Package golden runs table-driven tests whose table lives in the file system:
// each input file under a directory is one test case, and each of its
// expected outputs lives next to it.
package golden

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus is a directory of test cases.
type Corpus struct {
	// The directory holding the test cases, relative to the file that calls
	// [Corpus.Run].
	Root string

	// An environment variable holding a doublestar glob. Test cases whose
	// paths match it have their expected outputs rewritten instead of checked.
	Refresh string

	// The extension of input files, without a dot, e.g. "yaml".
	Extension string

	// The outputs of each test case. For an input foo.yaml and an output with
	// extension "stderr", the expected output is in foo.yaml.stderr. A missing
	// file is the same as an empty one.
	Outputs []Output

	// Test runs a single test case, and returns one string per element of
	// Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one of the outputs of a test case.
type Output struct {
	Extension string

	// Compares a result with its expected value. If nil, the two must be
	// byte-for-byte identical.
	Compare Compare
}

// Compare compares the output of a test with its expected value.
//
// Returns the empty string if they match, otherwise a description of how they
// differ.
type Compare func(got, want string) string

// Run runs every test case in this corpus as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	t.Helper()

	dir := callerDir()
	root := filepath.Join(dir, c.Root)

	cases, err := doublestar.Glob(os.DirFS(root), "**/*."+c.Extension)
	if err != nil {
		t.Fatalf("golden: searching %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("golden: no *.%s files in %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: %s=%q is not a valid glob", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing outputs matching %s=%s", c.Refresh, refresh)
	}

	for _, name := range cases {
		path := filepath.Join(root, filepath.FromSlash(name))
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: reading input: %v", err)
			}
			results := c.Test(t, name, string(input))
			if len(results) != len(c.Outputs) {
				t.Fatalf("golden: test returned %d results, want %d", len(results), len(c.Outputs))
			}

			update, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				expected := path + "." + output.Extension
				if update {
					if err := write(expected, results[i]); err != nil {
						t.Errorf("golden: updating %q: %v", expected, err)
					}
					continue
				}

				want, err := os.ReadFile(expected)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("golden: reading %q: %v", expected, err)
					continue
				}
				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if diff := compare(results[i], string(want)); diff != "" {
					t.Errorf("golden: %s does not match:\n%s", filepath.Base(expected), diff)
				}
			}
		})
	}
}

// write writes an expected output, or removes it if it is empty.
func write(path, data string) error {
	if data == "" {
		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.WriteFile(path, []byte(data), 0o644)
}

// Diff is the default [Compare]: a unified diff from want to got.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return strings.TrimRight(diff, "\n")
}

func callerDir() string {
	// Skip callerDir and Corpus.Run.
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("golden: could not determine the calling test's directory")
	}
	return filepath.Dir(file)
}
