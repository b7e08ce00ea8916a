// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"tailscale.com/util/set"
)

// Unbounded is the Max of an Arity without an upper limit.
const Unbounded = math.MaxInt

// Arity is the closed range of tokens an argument consumes per occurrence.
type Arity struct {
	Min, Max int
}

func (a Arity) String() string {
	switch {
	case a.Min == a.Max:
		return fmt.Sprint(a.Min)
	case a.Max == Unbounded:
		return fmt.Sprintf("at least %d", a.Min)
	default:
		return fmt.Sprintf("%d..%d", a.Min, a.Max)
	}
}

func (a Arity) contains(n int) bool {
	return n >= a.Min && n <= a.Max
}

// NargsPattern names the common open-ended arities.
type NargsPattern int

const (
	NargsOptional   NargsPattern = iota // [0, 1]
	NargsAny                            // [0, inf)
	NargsAtLeastOne                     // [1, inf)
)

// Action converts one raw token into a Value.
type Action func(token string) (Value, error)

type builtinKind uint8

const (
	builtinNone builtinKind = iota
	builtinHelp
	builtinVersion
)

// Argument is one declared positional or optional argument. Arguments are
// created with Parser.AddArgument and configured with the chainable methods
// below before the first Parse. Misconfiguration panics.
type Argument struct {
	names      []string
	help       string
	metavar    string
	positional bool
	arity      Arity
	required   bool
	repeatable bool
	hidden     bool
	optionLike bool

	defaults []Value
	implicit Value
	action   Action
	hook     func(string) error

	choices     set.Set[Value]
	choiceReprs set.Set[string]
	choiceList  []Value

	builtin builtinKind
	binders []func(*Argument) error

	values   []Value
	count    int
	used     bool
	usedName string
}

func newArgument(names []string) *Argument {
	if len(names) == 0 {
		panic("argparse: argument needs at least one name")
	}
	names = slices.Clone(names)
	slices.SortStableFunc(names, func(a, b string) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	names = slices.Compact(names)
	positional := true
	for _, n := range names {
		if n == "" {
			panic("argparse: empty argument name")
		}
		if isOptionLike(n) {
			positional = false
		}
	}
	return &Argument{
		names:      names,
		metavar:    "VAR",
		positional: positional,
		arity:      Arity{1, 1},
	}
}

// Help sets the help text shown in the argument listing.
func (a *Argument) Help(s string) *Argument {
	a.help = s
	return a
}

// Metavar sets the placeholder shown for the argument's values.
func (a *Argument) Metavar(s string) *Argument {
	a.metavar = s
	return a
}

// Required marks an optional argument as mandatory.
func (a *Argument) Required() *Argument {
	a.required = true
	return a
}

// Default sets the value used when the argument is never supplied.
func (a *Argument) Default(v any) *Argument {
	return a.Defaults(v)
}

// Defaults sets a multi-valued default, read back with GetSlice.
func (a *Argument) Defaults(vs ...any) *Argument {
	a.defaults = a.defaults[:0]
	for _, v := range vs {
		a.defaults = append(a.defaults, mustValueOf(v))
	}
	return a
}

// Implicit sets the value stored when the argument is matched without a value.
// It forces the arity to zero.
func (a *Argument) Implicit(v any) *Argument {
	a.implicit = mustValueOf(v)
	a.arity = Arity{0, 0}
	return a
}

// Flag makes the argument a boolean switch: false by default, true when present.
func (a *Argument) Flag() *Argument {
	return a.Default(false).Implicit(true)
}

// Nargs sets an exact token count.
func (a *Argument) Nargs(n int) *Argument {
	return a.NargsRange(n, n)
}

// NargsRange sets an explicit [min, max] token range.
func (a *Argument) NargsRange(min, max int) *Argument {
	if min < 0 || max < 0 {
		panic(fmt.Sprintf("argparse: %s: negative nargs", a.names[0]))
	}
	if min > max {
		panic(fmt.Sprintf("argparse: %s: nargs min %d exceeds max %d", a.names[0], min, max))
	}
	a.arity = Arity{min, max}
	if max > 0 {
		a.implicit = Value{}
	}
	return a
}

// NargsPattern sets one of the open-ended arities.
func (a *Argument) NargsPattern(p NargsPattern) *Argument {
	switch p {
	case NargsOptional:
		return a.NargsRange(0, 1)
	case NargsAny:
		return a.NargsRange(0, Unbounded)
	case NargsAtLeastOne:
		return a.NargsRange(1, Unbounded)
	default:
		panic(fmt.Sprintf("argparse: unknown nargs pattern %d", p))
	}
}

// Remaining makes the argument swallow every following token, including
// ones that look like options.
func (a *Argument) Remaining() *Argument {
	a.optionLike = true
	return a.NargsPattern(NargsAny)
}

// Append allows the argument to be given more than once. Each occurrence
// appends to the collected values.
func (a *Argument) Append() *Argument {
	a.repeatable = true
	return a
}

// Hidden hides the argument from usage and help output.
func (a *Argument) Hidden() *Argument {
	a.hidden = true
	return a
}

// Choices restricts the accepted values. A string token also matches a
// choice of another kind when its text equals the choice's String form.
func (a *Argument) Choices(vs ...any) *Argument {
	if len(vs) == 0 {
		panic(fmt.Sprintf("argparse: %s: zero choices provided", a.names[0]))
	}
	a.choices = make(set.Set[Value])
	a.choiceReprs = make(set.Set[string])
	a.choiceList = a.choiceList[:0]
	for _, v := range vs {
		val := mustValueOf(v)
		if a.choices.Contains(val) {
			continue
		}
		a.choices.Add(val)
		a.choiceReprs.Add(val.String())
		a.choiceList = append(a.choiceList, val)
	}
	return a
}

// Action installs a valued coercion applied to every consumed token.
func (a *Argument) Action(fn Action) *Argument {
	a.action = fn
	a.hook = nil
	return a
}

// Do installs a side-effecting action. Tokens consumed by the argument are
// passed to fn and contribute no value.
func (a *Argument) Do(fn func(string) error) *Argument {
	a.hook = fn
	a.action = nil
	return a
}

// Scan coerces tokens with a numeric conversion verb. See ScanValue.
func (a *Argument) Scan(verb rune) *Argument {
	if !validVerb(verb) {
		panic(fmt.Sprintf("argparse: %s: unsupported scan verb %q", a.names[0], verb))
	}
	return a.Action(func(tok string) (Value, error) { return ScanValue(verb, tok) })
}

// Int coerces tokens to signed integers, accepting 0x, 0o and 0b prefixes.
func (a *Argument) Int() *Argument { return a.Scan('i') }

// Uint coerces tokens to unsigned decimal integers.
func (a *Argument) Uint() *Argument { return a.Scan('u') }

// Float coerces tokens to floating point numbers.
func (a *Argument) Float() *Argument { return a.Scan('g') }

// Bool coerces tokens with strconv.ParseBool.
func (a *Argument) Bool() *Argument { return a.Action(ParseBool) }

// Duration coerces tokens with time.ParseDuration.
func (a *Argument) Duration() *Argument { return a.Action(ParseDuration) }

// Names returns the argument's names, shortest first.
func (a *Argument) Names() []string { return slices.Clone(a.names) }

// Name returns the primary (shortest) name.
func (a *Argument) Name() string { return a.names[0] }

// IsPositional reports whether the argument is bound by position.
func (a *Argument) IsPositional() bool { return a.positional }

// Arity returns the argument's token range.
func (a *Argument) Arity() Arity { return a.arity }

func (a *Argument) hasDefault() bool { return len(a.defaults) > 0 }

// matchChoice returns the choice v stands for. A string token matching the
// text of a choice of another kind yields that choice.
func (a *Argument) matchChoice(v Value) (Value, bool) {
	if a.choices == nil || a.choices.Contains(v) {
		return v, true
	}
	if v.Kind() == KindString && a.choiceReprs.Contains(v.s) {
		for _, c := range a.choiceList {
			if c.String() == v.s {
				return c, true
			}
		}
	}
	return Value{}, false
}

func (a *Argument) choiceString() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, c := range a.choiceList {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// coerce applies the argument's action to one token. ok is false for void
// actions, which store nothing.
func (a *Argument) coerce(tok string) (v Value, ok bool, err error) {
	switch {
	case a.hook != nil:
		if err := a.hook(tok); err != nil {
			return Value{}, false, &Error{Kind: ErrCoercion, Name: a.names[0], Token: tok, Err: err,
				Msg: fmt.Sprintf("%s: %v", a.names[0], err)}
		}
		return Value{}, false, nil
	case a.action != nil:
		v, err := a.action(tok)
		if err != nil {
			return Value{}, false, &Error{Kind: ErrCoercion, Name: a.names[0], Token: tok, Err: err,
				Msg: fmt.Sprintf("%s: %v", a.names[0], err)}
		}
		return v, true, nil
	default:
		return String(tok), true, nil
	}
}

// usage renders the argument the way diagnostics name it: "--first VAR",
// "-a/--apples VAR", "-v" or "input".
func (a *Argument) usage() string {
	if a.positional {
		return a.names[0]
	}
	s := strings.Join(a.names, "/")
	if a.arity.Max == 0 {
		return s
	}
	return s + " " + a.metavar
}

func (a *Argument) reset() {
	a.values = nil
	a.count = 0
	a.used = false
	a.usedName = ""
}

func (a *Argument) clone() *Argument {
	c := *a
	c.names = slices.Clone(a.names)
	c.defaults = slices.Clone(a.defaults)
	c.choiceList = slices.Clone(a.choiceList)
	c.binders = slices.Clone(a.binders)
	c.values = slices.Clone(a.values)
	if a.choices != nil {
		c.choices = make(set.Set[Value], len(a.choices))
		c.choiceReprs = make(set.Set[string], len(a.choiceReprs))
		for v := range a.choices {
			c.choices.Add(v)
		}
		for s := range a.choiceReprs {
			c.choiceReprs.Add(s)
		}
	}
	return &c
}
