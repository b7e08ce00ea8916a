// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argfile loads argument tables from TOML or YAML files and builds
// parsers from them.
package argfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/argparse/pkg/argparse"
	"gopkg.in/yaml.v3"
)

// Names searched for by Find, in order.
var fileNames = []string{"argspec.toml", "argspec.yaml", "argspec.yml"}

// Format is a spec file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// File is a decoded spec file.
type File struct {
	Version     string    `toml:"version" yaml:"version"`
	Program     string    `toml:"program" yaml:"program"`
	Description string    `toml:"description,omitempty" yaml:"description,omitempty"`
	Epilog      string    `toml:"epilog,omitempty" yaml:"epilog,omitempty"`
	DefaultArgs string    `toml:"default_args,omitempty" yaml:"default_args,omitempty"`
	Proximity   int       `toml:"proximity,omitempty" yaml:"proximity,omitempty"`
	Arguments   []Arg     `toml:"argument" yaml:"arguments"`
	Groups      []Group   `toml:"group,omitempty" yaml:"groups,omitempty"`
	Commands    []Command `toml:"command,omitempty" yaml:"commands,omitempty"`
}

// Command is a subcommand with its own argument table.
type Command struct {
	Name        string    `toml:"name" yaml:"name"`
	Description string    `toml:"description,omitempty" yaml:"description,omitempty"`
	Arguments   []Arg     `toml:"argument" yaml:"arguments"`
	Groups      []Group   `toml:"group,omitempty" yaml:"groups,omitempty"`
	Commands    []Command `toml:"command,omitempty" yaml:"commands,omitempty"`
}

// Group is a mutually exclusive group.
type Group struct {
	Required  bool  `toml:"required,omitempty" yaml:"required,omitempty"`
	Arguments []Arg `toml:"argument" yaml:"arguments"`
}

// Arg declares one argument.
//
// Nargs is a count ("2"), a range ("1..3"), one of "?", "*", "+", or
// "remaining". Type is string (default), int, uint, float, bool, duration
// or "scan:<verb>". Default may be a scalar or a list; its elements are
// converted like command line tokens.
type Arg struct {
	Names    []string `toml:"names" yaml:"names"`
	Help     string   `toml:"help,omitempty" yaml:"help,omitempty"`
	Metavar  string   `toml:"metavar,omitempty" yaml:"metavar,omitempty"`
	Nargs    string   `toml:"nargs,omitempty" yaml:"nargs,omitempty"`
	Type     string   `toml:"type,omitempty" yaml:"type,omitempty"`
	Default  any      `toml:"default,omitempty" yaml:"default,omitempty"`
	Implicit any      `toml:"implicit,omitempty" yaml:"implicit,omitempty"`
	Flag     bool     `toml:"flag,omitempty" yaml:"flag,omitempty"`
	Required bool     `toml:"required,omitempty" yaml:"required,omitempty"`
	Append   bool     `toml:"append,omitempty" yaml:"append,omitempty"`
	Hidden   bool     `toml:"hidden,omitempty" yaml:"hidden,omitempty"`
	Choices  []any    `toml:"choices,omitempty" yaml:"choices,omitempty"`
	Aliases  []string `toml:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown spec file extension %q", filepath.Ext(path))
	}
}

// Load reads and decodes the spec file at path.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(bytes.NewReader(content), format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Decode reads a spec file from r.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown spec format %q", format)
	}
	if f.Version != "" {
		if _, err := semver.NewVersion(f.Version); err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", f.Version, err)
		}
	}
	return &f, nil
}

// Find walks up from startDir and returns the first spec file found.
// It returns os.ErrNotExist when there is none.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// Build declares f's arguments on a new parser. opts are applied after the
// options derived from the file.
func (f *File) Build(opts ...argparse.Option) (*argparse.Parser, error) {
	var fileOpts []argparse.Option
	if f.Version != "" {
		v, err := semver.NewVersion(f.Version)
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", f.Version, err)
		}
		fileOpts = append(fileOpts, argparse.WithVersion(v.String()))
	}
	if f.Description != "" {
		fileOpts = append(fileOpts, argparse.WithDescription(f.Description))
	}
	if f.Epilog != "" {
		fileOpts = append(fileOpts, argparse.WithEpilog(f.Epilog))
	}
	if f.Proximity > 0 {
		fileOpts = append(fileOpts, argparse.WithProximity(f.Proximity))
	}
	if f.DefaultArgs != "" {
		d, err := parseDefaultArgs(f.DefaultArgs)
		if err != nil {
			return nil, err
		}
		fileOpts = append(fileOpts, argparse.WithDefaultArguments(d))
	}
	p := argparse.New(f.Program, append(fileOpts, opts...)...)
	if err := declare(p, f.Arguments, f.Groups); err != nil {
		return nil, err
	}
	for _, c := range f.Commands {
		sub, err := c.build(opts)
		if err != nil {
			return nil, err
		}
		p.AddSubparser(sub)
	}
	return p, nil
}

func (c *Command) build(opts []argparse.Option) (*argparse.Parser, error) {
	if c.Name == "" {
		return nil, errors.New("command without a name")
	}
	p := argparse.New(c.Name, append([]argparse.Option{argparse.WithDescription(c.Description)}, opts...)...)
	if err := declare(p, c.Arguments, c.Groups); err != nil {
		return nil, fmt.Errorf("command %s: %w", c.Name, err)
	}
	for _, sc := range c.Commands {
		sub, err := sc.build(opts)
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", c.Name, err)
		}
		p.AddSubparser(sub)
	}
	return p, nil
}

func parseDefaultArgs(s string) (argparse.DefaultArgs, error) {
	switch s {
	case "all":
		return argparse.DefaultArgsAll, nil
	case "help":
		return argparse.DefaultArgsHelp, nil
	case "version":
		return argparse.DefaultArgsVersion, nil
	case "none":
		return argparse.DefaultArgsNone, nil
	default:
		return 0, fmt.Errorf("unknown default_args %q", s)
	}
}

func declare(p *argparse.Parser, args []Arg, groups []Group) error {
	for _, a := range args {
		if err := a.declare(p.AddArgument, p); err != nil {
			return err
		}
	}
	for _, g := range groups {
		grp := p.AddMutuallyExclusiveGroup(g.Required)
		for _, a := range g.Arguments {
			if err := a.declare(grp.AddArgument, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// declare validates a before handing it to add, so that misconfigured files
// surface as errors rather than argparse panics.
func (a *Arg) declare(add func(...string) *argparse.Argument, p *argparse.Parser) error {
	if len(a.Names) == 0 {
		return errors.New("argument without names")
	}
	name := a.Names[0]
	for _, n := range a.Names {
		if n == "" {
			return fmt.Errorf("argument %s: empty name", name)
		}
	}
	min, max, remaining, err := parseNargs(a.Nargs)
	if err != nil {
		return fmt.Errorf("argument %s: %w", name, err)
	}
	coerce, err := coercion(a.Type)
	if err != nil {
		return fmt.Errorf("argument %s: %w", name, err)
	}
	defaults, err := convertAll(coerce, a.Default)
	if err != nil {
		return fmt.Errorf("argument %s: default: %w", name, err)
	}
	choices, err := convertAll(coerce, a.Choices)
	if err != nil {
		return fmt.Errorf("argument %s: choices: %w", name, err)
	}
	arg := add(a.Names...)
	if arg.IsPositional() && len(a.Aliases) > 0 {
		return fmt.Errorf("argument %s: positional arguments take no aliases", name)
	}
	if a.Help != "" {
		arg.Help(a.Help)
	}
	if a.Metavar != "" {
		arg.Metavar(a.Metavar)
	}
	switch {
	case a.Flag:
		arg.Flag()
	case remaining:
		arg.Remaining()
	case a.Nargs != "":
		arg.NargsRange(min, max)
	}
	if a.Type != "" && a.Type != "string" {
		arg.Action(coerce)
	}
	if a.Implicit != nil {
		v, err := convertOne(coerce, a.Implicit)
		if err != nil {
			return fmt.Errorf("argument %s: implicit: %w", name, err)
		}
		arg.Implicit(v)
	}
	if len(defaults) > 0 {
		arg.Defaults(defaults...)
	}
	if len(choices) > 0 {
		arg.Choices(choices...)
	}
	if a.Required {
		arg.Required()
	}
	if a.Append {
		arg.Append()
	}
	if a.Hidden {
		arg.Hidden()
	}
	for _, alias := range a.Aliases {
		p.AddHiddenAlias(arg, alias)
	}
	return nil
}

// parseNargs reads the nargs forms accepted in spec files. An empty string
// keeps the argparse default of exactly one.
func parseNargs(s string) (min, max int, remaining bool, err error) {
	switch s {
	case "":
		return 1, 1, false, nil
	case "?":
		return 0, 1, false, nil
	case "*":
		return 0, argparse.Unbounded, false, nil
	case "+":
		return 1, argparse.Unbounded, false, nil
	case "remaining":
		return 0, argparse.Unbounded, true, nil
	}
	lo, hi, isRange := strings.Cut(s, "..")
	min, err = strconv.Atoi(lo)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid nargs %q", s)
	}
	max = min
	if isRange {
		if hi == "" {
			max = argparse.Unbounded
		} else if max, err = strconv.Atoi(hi); err != nil {
			return 0, 0, false, fmt.Errorf("invalid nargs %q", s)
		}
	}
	if min < 0 || max < min {
		return 0, 0, false, fmt.Errorf("invalid nargs %q", s)
	}
	return min, max, false, nil
}

func coercion(typ string) (argparse.Action, error) {
	switch {
	case typ == "" || typ == "string":
		return func(s string) (argparse.Value, error) { return argparse.String(s), nil }, nil
	case typ == "int":
		return scanner('i'), nil
	case typ == "uint":
		return scanner('u'), nil
	case typ == "float":
		return scanner('g'), nil
	case typ == "bool":
		return argparse.ParseBool, nil
	case typ == "duration":
		return argparse.ParseDuration, nil
	case strings.HasPrefix(typ, "scan:"):
		verb := []rune(strings.TrimPrefix(typ, "scan:"))
		if len(verb) != 1 || !strings.ContainsRune("diuoxXaAeEfFgG", verb[0]) {
			return nil, fmt.Errorf("unsupported scan type %q", typ)
		}
		return scanner(verb[0]), nil
	default:
		return nil, fmt.Errorf("unknown type %q", typ)
	}
}

func scanner(verb rune) argparse.Action {
	return func(s string) (argparse.Value, error) { return argparse.ScanValue(verb, s) }
}

// convertAll runs raw, a scalar or a list decoded from the file, through
// coerce element by element.
func convertAll(coerce argparse.Action, raw any) ([]any, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}
	out := make([]any, 0, len(items))
	for _, it := range items {
		v, err := convertOne(coerce, it)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func convertOne(coerce argparse.Action, raw any) (argparse.Value, error) {
	if b, ok := raw.(bool); ok {
		return argparse.Bool(b), nil
	}
	return coerce(fmt.Sprint(raw))
}
