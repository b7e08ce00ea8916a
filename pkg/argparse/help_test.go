// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	p := New("prog")
	p.AddArgument("--config").Default("config.yml")
	p.AddArgument("--out").Required()
	p.AddArgument("--secret").Hidden()
	p.AddArgument("input")
	p.AddArgument("rest").NargsPattern(NargsAny)
	p.AddSubparser(New("add")).AddSubparser(New("clean"))

	want := "Usage: prog [-h] [-v] [--config VAR] --out VAR input [rest...] {add,clean}"
	if got := p.Usage(); got != want {
		t.Fatalf("Usage() = %q, want %q", got, want)
	}
}

func TestHelpListing(t *testing.T) {
	p := New("prog", WithDescription("Does things."), WithEpilog("See the docs."))
	p.AddArgument("--config").Default("config.yml").Help("config file")
	p.AddArgument("--color").Choices("red", "blue")
	p.AddArgument("--secret").Hidden()
	p.AddArgument("input").Help("input file")

	help := p.Help()
	for _, want := range []string{
		"Does things.",
		"Positional arguments:",
		"input",
		"Optional arguments:",
		"-h, --help",
		"shows help message and exits",
		`config file [default: "config.yml"]`,
		"[choices: {red, blue}]",
		"See the docs.",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
	if strings.Contains(help, "--secret") {
		t.Errorf("help lists hidden argument:\n%s", help)
	}
}
