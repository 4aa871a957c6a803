// Copyright 2026 Ian Lewis
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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-pocketdict/internal/testutil"
)

const testIfo = "PocketDict's dict ifo file\n" +
	"version=1.0.0\n" +
	"bookname=Test Dictionary\n" +
	"wordcount={{wordcount}}\n" +
	"idxfilesize={{idxfilesize}}\n" +
	"author=Ian Lewis\n"

var testEntries = []testutil.Entry{
	{Word: "apple", Definition: "[ˈæp.əl] a fruit; a company"},
	{Word: "banana", Definition: "a long yellow fruit"},
}

// run runs the app with args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newPdictApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"pdict"}, args...))
	t.Logf("stderr: %s", stderr.String())
	return stdout.String(), err
}

func TestLookup(t *testing.T) {
	t.Parallel()

	td := testutil.MakeTempDict(t, testEntries, &testutil.MakeDictOptions{Ifo: testIfo})

	tests := []struct {
		name     string
		args     []string
		expected string
		err      error
	}{
		{
			name:     "info file",
			args:     []string{"--info", td.IfoPath, "lookup", "apple"},
			expected: "apple [ˈæp.əl]\n1. a fruit\n2. a company\n",
		},
		{
			name:     "index and data",
			args:     []string{"--index", td.IdxPath, "--data", td.DictPath, "lookup", "Banana"},
			expected: "banana\na long yellow fruit\n",
		},
		{
			name:     "not found",
			args:     []string{"--info", td.IfoPath, "lookup", "cherry"},
			expected: "Word not found\n",
			err:      ErrNotFound,
		},
		{
			name: "missing word",
			args: []string{"--info", td.IfoPath, "lookup"},
			err:  ErrFlagParse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			hist := filepath.Join(t.TempDir(), "history")
			got, err := run(t, append([]string{"--history", hist}, tc.args...)...)
			if diff := cmp.Diff(tc.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("Run (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	t.Parallel()

	td := testutil.MakeTempDict(t, []testutil.Entry{
		{Word: "apple", Definition: "a fruit"},
	}, &testutil.MakeDictOptions{Ifo: testIfo})

	got, err := run(t, "--no-history", "--info", td.IfoPath, "random")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff("apple\na fruit\n", got); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}

	empty := testutil.MakeTempDict(t, nil, nil)
	got, err = run(t, "--no-history", "--index", empty.IdxPath, "--data", empty.DictPath, "random")
	if diff := cmp.Diff(ErrNotFound, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Run (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("Dictionary is empty\n", got); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestHistory(t *testing.T) {
	t.Parallel()

	td := testutil.MakeTempDict(t, testEntries, &testutil.MakeDictOptions{Ifo: testIfo})
	hist := filepath.Join(t.TempDir(), "history")
	flags := []string{"--info", td.IfoPath, "--history", hist}

	for _, w := range []string{"banana", "apple", "cherry"} {
		_, _ = run(t, append(flags, "lookup", w)...)
	}

	b, err := os.ReadFile(hist)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("apple\nbanana\n", string(b)); diff != "" {
		t.Errorf("history file (-want +got):\n%s", diff)
	}

	got, err := run(t, append(flags, "history")...)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("history: got %q, want header and two rows", got)
	}
	for i, w := range []string{"apple", "banana"} {
		if fields := strings.Fields(lines[i+1]); len(fields) != 2 || fields[1] != w {
			t.Errorf("history row %d: got %q, want %q", i+1, lines[i+1], w)
		}
	}

	got, err = run(t, append(flags, "history", "--select", "2")...)
	if err != nil {
		t.Fatalf("history --select: %v", err)
	}
	if diff := cmp.Diff("banana\na long yellow fruit\n", got); diff != "" {
		t.Errorf("history --select (-want +got):\n%s", diff)
	}

	_, err = run(t, append(flags, "history", "--select", "5")...)
	if diff := cmp.Diff(ErrFlagParse, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("history --select 5 (-want +got):\n%s", diff)
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	td := testutil.MakeTempDict(t, testEntries, &testutil.MakeDictOptions{Ifo: testIfo})
	got, err := run(t, "--no-history", "--info", td.IfoPath, "info")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"Test Dictionary", "Ian Lewis", td.IdxPath, td.DictPath} {
		if !strings.Contains(got, want) {
			t.Errorf("info output %q does not contain %q", got, want)
		}
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	td := testutil.MakeTempDict(t, testEntries, &testutil.MakeDictOptions{Ifo: testIfo})
	got, err := run(t, "list", td.Dir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"Test Dictionary", "Ian Lewis", td.IfoPath} {
		if !strings.Contains(got, want) {
			t.Errorf("list output %q does not contain %q", got, want)
		}
	}

	_, err = run(t, "list", filepath.Join(t.TempDir(), "missing"))
	if diff := cmp.Diff(ErrPdict, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("list missing (-want +got):\n%s", diff)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	got, err := run(t, "--version")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(got, "GitVersion") {
		t.Errorf("unexpected version output: %q", got)
	}
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	td := testutil.MakeTempDict(t, testEntries, &testutil.MakeDictOptions{Ifo: testIfo})
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "dictionary:\n  info: " + td.IfoPath + "\nhistory:\n  path: " +
		filepath.Join(t.TempDir(), "history") + "\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, "--config", path, "lookup", "banana")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff("banana\na long yellow fruit\n", got); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}

	// Command line flags take precedence over the file.
	other := testutil.MakeTempDict(t, []testutil.Entry{
		{Word: "banana", Definition: "a plant"},
	}, nil)
	got, _ = run(t, "--config", path, "--info", "", "--index", other.IdxPath, "--data", other.DictPath, "lookup", "banana")
	if diff := cmp.Diff("banana\na plant\n", got); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestNoDictionary(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("PDICT_DATA_DIR", "")
	t.Setenv("XDG_DATA_DIRS", home)

	_, err := run(t, "--no-history", "lookup", "apple")
	if diff := cmp.Diff(ErrConfig, err, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Run (-want +got):\n%s", diff)
	}
}
