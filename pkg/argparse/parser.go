// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"tailscale.com/util/mak"
)

// DefaultArgs selects which built-in arguments New declares.
type DefaultArgs uint8

const (
	DefaultArgsNone    DefaultArgs = 0
	DefaultArgsHelp    DefaultArgs = 1 << 0 // -h, --help
	DefaultArgsVersion DefaultArgs = 1 << 1 // -v, --version
	DefaultArgsAll                 = DefaultArgsHelp | DefaultArgsVersion
)

// Parser holds a table of declared arguments and the values bound to them by
// the last Parse. A Parser is not safe for concurrent use; independent
// parsers are.
type Parser struct {
	name        string
	version     string
	description string
	epilog      string

	reg    registry
	groups []*Group

	subparsers []*Parser
	subIndex   map[string]*Parser
	selected   *Parser

	defaultArgs   DefaultArgs
	exitOnDefault bool
	exit          func(int)
	out           io.Writer
	logger        *log.Logger
	proximity     int

	parsed bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithVersion sets the text printed by --version.
func WithVersion(v string) Option {
	return func(p *Parser) { p.version = v }
}

// WithDescription sets the paragraph printed under the usage line.
func WithDescription(s string) Option {
	return func(p *Parser) { p.description = s }
}

// WithEpilog sets the paragraph printed at the end of the help text.
func WithEpilog(s string) Option {
	return func(p *Parser) { p.epilog = s }
}

// WithDefaultArguments chooses the built-in arguments. The default is
// DefaultArgsAll.
func WithDefaultArguments(d DefaultArgs) Option {
	return func(p *Parser) { p.defaultArgs = d }
}

// WithExitOnDefaultArguments controls whether --help and --version print and
// stop the parse. When false they are recorded like ordinary flags.
func WithExitOnDefaultArguments(exit bool) Option {
	return func(p *Parser) { p.exitOnDefault = exit }
}

// WithExitFunc installs the function called with status 0 after --help or
// --version printed their text. Typically os.Exit. Without one, Parse
// returns ErrHelp or ErrVersion and the caller decides.
func WithExitFunc(fn func(int)) Option {
	return func(p *Parser) { p.exit = fn }
}

// WithOutput sets where help and version text is written. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Parser) { p.out = w }
}

// WithLogger enables debug tracing of dispatch decisions.
func WithLogger(l *log.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// WithProximity lets an unknown option within n edits of a declared name
// stand for that name. Zero disables approximate matching.
func WithProximity(n int) Option {
	return func(p *Parser) { p.proximity = n }
}

// New returns a parser for the program called name. An empty name is
// replaced by argv[0] on the first Parse.
func New(name string, opts ...Option) *Parser {
	p := &Parser{
		name:          name,
		version:       "1.0",
		defaultArgs:   DefaultArgsAll,
		exitOnDefault: true,
		out:           os.Stdout,
	}
	for _, o := range opts {
		o(p)
	}
	if p.logger == nil {
		p.logger = log.New(io.Discard)
	}
	if p.defaultArgs&DefaultArgsHelp != 0 {
		h := p.AddArgument("-h", "--help").Help("shows help message and exits").Flag()
		h.builtin = builtinHelp
	}
	if p.defaultArgs&DefaultArgsVersion != 0 {
		v := p.AddArgument("-v", "--version").Help("prints version information and exits").Flag()
		v.builtin = builtinVersion
	}
	return p
}

// Name returns the program name.
func (p *Parser) Name() string { return p.name }

// AddArgument declares an argument. Names that look like options ("-x",
// "--long") make an optional argument; otherwise the argument is positional.
// Reusing a name rebinds it to the new argument.
func (p *Parser) AddArgument(names ...string) *Argument {
	arg := newArgument(names)
	p.reg.register(arg)
	return arg
}

// AddHiddenAlias makes alias another name for arg. The alias is accepted on
// the command line but never shown in help.
func (p *Parser) AddHiddenAlias(arg *Argument, alias string) *Parser {
	idx := p.reg.indexOf(arg)
	if idx < 0 {
		panic(fmt.Sprintf("argparse: %s is not declared on %s", arg.names[0], p.name))
	}
	p.reg.alias(alias, idx)
	return p
}

// AddParents copies the arguments and groups of each parent into p, leaving
// out their built-in help and version arguments. Later declarations win
// for colliding names.
func (p *Parser) AddParents(parents ...*Parser) *Parser {
	for _, parent := range parents {
		remap := make(map[int]int, len(parent.reg.args))
		for i, arg := range parent.reg.args {
			if arg.builtin != builtinNone {
				continue
			}
			remap[i] = p.reg.register(arg.clone())
		}
		for name, idx := range parent.reg.index {
			if n, ok := remap[idx]; ok && !slices.Contains(parent.reg.args[idx].names, name) {
				p.reg.alias(name, n)
			}
		}
		for _, g := range parent.groups {
			ng := &Group{p: p, required: g.required}
			for _, m := range g.members {
				if n, ok := remap[m]; ok {
					ng.members = append(ng.members, n)
				}
			}
			p.groups = append(p.groups, ng)
		}
	}
	return p
}

// AddSubparser registers sub as a subcommand named after sub.Name(). The
// parent keeps a reference; values parsed into sub are read from sub.
func (p *Parser) AddSubparser(sub *Parser) *Parser {
	if sub.name == "" {
		panic("argparse: subparser needs a name")
	}
	if _, dup := p.subIndex[sub.name]; !dup {
		p.subparsers = append(p.subparsers, sub)
	}
	mak.Set(&p.subIndex, sub.name, sub)
	return p
}

// Subcommand returns the subparser selected by the last Parse, or nil.
func (p *Parser) Subcommand() *Parser { return p.selected }

// IsSubcommandUsed reports whether the last Parse delegated to the
// subparser called name.
func (p *Parser) IsSubcommandUsed(name string) bool {
	return p.selected != nil && p.selected.name == name
}

// Clone returns a copy of p with independent arguments and groups.
// Subparsers are shared with p.
func (p *Parser) Clone() *Parser {
	c := *p
	c.reg = p.reg.clone()
	c.groups = make([]*Group, len(p.groups))
	for i, g := range p.groups {
		c.groups[i] = g.clone(&c)
	}
	c.subparsers = slices.Clone(p.subparsers)
	c.subIndex = nil
	for _, s := range c.subparsers {
		mak.Set(&c.subIndex, s.name, s)
	}
	return &c
}

// Arguments returns the declared arguments in declaration order.
func (p *Parser) Arguments() []*Argument {
	return slices.Clone(p.reg.args)
}

// Lookup returns the argument bound to name.
func (p *Parser) Lookup(name string) (*Argument, bool) {
	return p.reg.lookup(name)
}

// Parse binds args to the declared arguments. args[0] is the program name.
// Values from a previous Parse are discarded first.
//
// On failure the returned error is an *Error. ErrHelp and ErrVersion are
// returned after the built-in arguments printed their text.
func (p *Parser) Parse(args []string) error {
	_, err := p.parse(args, false)
	return err
}

// ParseKnown is like Parse but returns unrecognised tokens instead of
// failing on them.
func (p *Parser) ParseKnown(args []string) ([]string, error) {
	return p.parse(args, true)
}

func (p *Parser) parse(args []string, known bool) ([]string, error) {
	p.reset()
	if p.name == "" && len(args) > 0 {
		p.name = args[0]
	}
	unknown, err := p.dispatch(args, known)
	if err != nil {
		return unknown, err
	}
	if err := p.validate(); err != nil {
		return unknown, err
	}
	p.parsed = true
	if err := p.bind(); err != nil {
		return unknown, err
	}
	return unknown, nil
}

func (p *Parser) reset() {
	p.reg.reset()
	p.selected = nil
	p.parsed = false
	for _, s := range p.subparsers {
		s.reset()
	}
}

// fire runs the built-in help and version behaviour after arg was matched.
func (p *Parser) fire(arg *Argument) error {
	if arg.builtin == builtinNone || !p.exitOnDefault {
		return nil
	}
	var err error
	switch arg.builtin {
	case builtinHelp:
		io.WriteString(p.out, p.Help())
		err = ErrHelp
	case builtinVersion:
		fmt.Fprintln(p.out, p.version)
		err = ErrVersion
	}
	if p.exit != nil {
		p.exit(0)
	}
	return err
}
