// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const gitSpec = `
version = "2.0.0"
program = "git"

[[argument]]
names = ["-C"]
metavar = "PATH"
default = "."

[[command]]
name = "add"
[[command.argument]]
names = ["-f", "--force"]
flag = true
[[command.argument]]
names = ["files"]
nargs = "*"
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "git.toml")
	if err := os.WriteFile(path, []byte(gitSpec), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func noEnv(string) string { return "" }

func TestRunJSON(t *testing.T) {
	spec := writeSpec(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"--spec", spec, "--json", "--", "git", "-C", "/src", "add", "-f", "a.go", "b.go"}, &stdout, &stderr, noEnv)
	if code != exitOK {
		t.Fatalf("run = %d, want %d; stderr:\n%s", code, exitOK, stderr.String())
	}
	var got report
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}
	if diff := cmp.Diff([]string{"add"}, got.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	byName := map[string]boundResult{}
	for _, a := range got.Arguments {
		byName[a.Command+"/"+a.Name] = a
	}
	if a := byName["/-C"]; !a.Used || !cmp.Equal(a.Values, []any{"/src"}) {
		t.Errorf("-C = %+v, want used with /src", a)
	}
	if a := byName["add/files"]; !cmp.Equal(a.Values, []any{"a.go", "b.go"}) {
		t.Errorf("add files = %+v, want a.go b.go", a)
	}
	if a := byName["add/-f"]; !a.Used || a.UsedName != "-f" {
		t.Errorf("add -f = %+v, want used as -f", a)
	}
}

func TestRunTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := func(k string) string {
		if k == specEnv {
			return writeSpec(t)
		}
		return ""
	}
	if code := run([]string{"--", "git", "add"}, &stdout, &stderr, env); code != exitOK {
		t.Fatalf("run = %d, want %d; stderr:\n%s", code, exitOK, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"COMMAND", "-C", "add", "files"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRunParseError(t *testing.T) {
	spec := writeSpec(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"--spec", spec, "--no-color", "--", "git", "--verbos"}, &stdout, &stderr, noEnv)
	if code != exitParseError {
		t.Fatalf("run = %d, want %d", code, exitParseError)
	}
	got := stderr.String()
	if !strings.HasPrefix(got, "Error: Unknown argument: --verbos") {
		t.Errorf("stderr = %q, want unknown argument error", got)
	}
	if !strings.Contains(got, "Usage: git") {
		t.Errorf("stderr = %q, want usage line", got)
	}
	if !strings.Contains(got, "Try 'git --help' for more information") {
		t.Errorf("stderr = %q, want help hint", got)
	}
}

func TestRunVersion(t *testing.T) {
	spec := writeSpec(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--spec", spec, "--", "git", "--version"}, &stdout, &stderr, noEnv); code != exitOK {
		t.Fatalf("run = %d, want %d", code, exitOK)
	}
	if got := strings.TrimSpace(stdout.String()); got != "2.0.0" {
		t.Errorf("stdout = %q, want 2.0.0", got)
	}
}

func TestRunMissingSpec(t *testing.T) {
	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "nope.toml")
	if code := run([]string{"--spec", missing, "--no-color"}, &stdout, &stderr, noEnv); code != exitFailure {
		t.Fatalf("run = %d, want %d", code, exitFailure)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q, want Error prefix", stderr.String())
	}
}

func TestSpecPathPrecedence(t *testing.T) {
	env := func(string) string { return "/from/env.toml" }
	if got, _ := specPath("/from/flag.toml", env); got != "/from/flag.toml" {
		t.Errorf("specPath with flag = %q, want flag value", got)
	}
	if got, _ := specPath("", env); got != "/from/env.toml" {
		t.Errorf("specPath with env = %q, want env value", got)
	}
}
