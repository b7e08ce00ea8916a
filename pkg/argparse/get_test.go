// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"reflect"
	"testing"
)

func TestGetErrors(t *testing.T) {
	p := New("prog")
	p.AddArgument("--name")
	p.AddArgument("--count").Uint()

	if _, err := Get[string](p, "--name"); !errors.Is(err, ErrNotParsed) {
		t.Fatalf("before Parse: err = %v, want %v", err, ErrNotParsed)
	}
	mustParse(t, p, "prog", "--count", "3")

	_, err := Get[string](p, "--folder")
	wantErr(t, err, ErrNoSuchArgument, "No such argument: --folder")

	_, err = Get[string](p, "--name")
	wantErr(t, err, ErrNoValueProvided, "No value provided for '--name'.")

	_, err = Get[int](p, "--count")
	wantErr(t, err, ErrTypeMismatch, "")
	if got := mustGet[uint64](t, p, "--count"); got != 3 {
		t.Fatalf("--count = %d, want 3", got)
	}
}

func TestGetSliceDefaults(t *testing.T) {
	p := New("prog")
	p.AddArgument("--ids").NargsPattern(NargsAtLeastOne).Int().Defaults(1, 2)
	p.AddArgument("files").NargsPattern(NargsAny)
	mustParse(t, p, "prog")

	if got := mustGetSlice[int](t, p, "--ids"); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("--ids = %v, want [1 2]", got)
	}
	if got := mustGetSlice[string](t, p, "files"); len(got) != 0 {
		t.Errorf("files = %q, want empty", got)
	}
	if _, err := GetSlice[string](p, "--ids"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want %v", err, ErrTypeMismatch)
	}
}

func TestPresent(t *testing.T) {
	p := New("prog")
	p.AddArgument("--level").Float().Default(0.5)
	mustParse(t, p, "prog")
	if _, ok, err := Present[float64](p, "--level"); ok || err != nil {
		t.Fatalf("Present = ok %v, err %v; want absent", ok, err)
	}
	mustParse(t, p, "prog", "--level", "0.75")
	v, ok, err := Present[float32](p, "--level")
	if !ok || err != nil || v != 0.75 {
		t.Fatalf("Present = %v, %v, %v; want 0.75", v, ok, err)
	}
}

func TestValidatorFirstErrorWins(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *Parser)
		args  []string
		kind  error
		msg   string
	}{
		{
			name: "registration order",
			setup: func(p *Parser) {
				p.AddArgument("--a").Required()
				p.AddArgument("--b").Required()
			},
			args: []string{"test"},
			kind: ErrRequiredArgumentMissing,
			msg:  "--a: required.",
		},
		{
			name: "missing positional",
			setup: func(p *Parser) {
				p.AddArgument("input")
			},
			args: []string{"test"},
			kind: ErrArityMismatch,
			msg:  "input: expected 1 argument(s). 0 provided.",
		},
		{
			name: "required without value",
			setup: func(p *Parser) {
				p.AddArgument("--out").Required().NargsPattern(NargsOptional)
			},
			args: []string{"test", "--out"},
			kind: ErrNoValueProvided,
			msg:  "--out: no value provided.",
		},
		{
			name: "invalid default",
			setup: func(p *Parser) {
				p.AddArgument("color").Default("yellow").Choices("red", "green", "blue")
			},
			args: []string{"test"},
			kind: ErrInvalidChoice,
			msg:  `Invalid default value "yellow" - allowed options: {red, green, blue}`,
		},
		{
			name: "required group",
			setup: func(p *Parser) {
				g := p.AddMutuallyExclusiveGroup(true)
				g.AddArgument("--first")
				g.AddArgument("--second")
				g.AddArgument("--third")
			},
			args: []string{"test"},
			kind: ErrRequiredGroupMissing,
			msg:  "One of the arguments '--first VAR' or '--second VAR' or '--third VAR' is required",
		},
		{
			name: "two groups",
			setup: func(p *Parser) {
				g1 := p.AddMutuallyExclusiveGroup(false)
				g1.AddArgument("--first")
				g1.AddArgument("--second")
				g1.AddArgument("--third")
				g2 := p.AddMutuallyExclusiveGroup(false)
				g2.AddArgument("-a")
				g2.AddArgument("-b")
			},
			args: []string{"test", "--first", "1", "-a", "2", "-b", "3"},
			kind: ErrMutuallyExclusive,
			msg:  "Argument '-b VAR' not allowed with '-a VAR'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("test")
			tt.setup(p)
			wantErr(t, p.Parse(tt.args), tt.kind, tt.msg)
		})
	}
}
