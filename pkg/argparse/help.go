// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Usage returns the one-line synopsis, e.g.
// "Usage: prog [--help] [--config VAR] input {add,clean}".
func (p *Parser) Usage() string {
	var sb strings.Builder
	sb.WriteString("Usage: ")
	sb.WriteString(p.name)
	for _, idx := range p.reg.optional {
		arg := p.reg.args[idx]
		if arg.hidden {
			continue
		}
		u := p.visibleNames(idx)[0]
		if arg.arity.Max > 0 {
			u += " " + metavars(arg)
		}
		if arg.required {
			sb.WriteString(" " + u)
		} else {
			sb.WriteString(" [" + u + "]")
		}
		if arg.repeatable {
			sb.WriteString("...")
		}
	}
	for _, idx := range p.reg.positional {
		arg := p.reg.args[idx]
		if arg.hidden {
			continue
		}
		sb.WriteString(" " + positionalUsage(arg))
	}
	if len(p.subparsers) > 0 {
		names := make([]string, len(p.subparsers))
		for i, s := range p.subparsers {
			names[i] = s.name
		}
		sb.WriteString(" {" + strings.Join(names, ",") + "}")
	}
	return sb.String()
}

// Help returns the full help text written by --help.
func (p *Parser) Help() string {
	var sb strings.Builder
	sb.WriteString(p.Usage())
	sb.WriteString("\n")
	if p.description != "" {
		sb.WriteString("\n" + p.description + "\n")
	}

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	var pos, opt int
	for _, idx := range p.reg.positional {
		if !p.reg.args[idx].hidden {
			pos++
		}
	}
	for _, idx := range p.reg.optional {
		if !p.reg.args[idx].hidden {
			opt++
		}
	}
	if pos > 0 {
		fmt.Fprint(tw, "\nPositional arguments:\n")
		for _, idx := range p.reg.positional {
			arg := p.reg.args[idx]
			if !arg.hidden {
				fmt.Fprintf(tw, "  %s\t%s\n", arg.names[0], describe(arg))
			}
		}
	}
	if opt > 0 {
		fmt.Fprint(tw, "\nOptional arguments:\n")
		for _, idx := range p.reg.optional {
			arg := p.reg.args[idx]
			if arg.hidden {
				continue
			}
			u := strings.Join(p.visibleNames(idx), ", ")
			if arg.arity.Max > 0 {
				u += " " + metavars(arg)
			}
			fmt.Fprintf(tw, "  %s\t%s\n", u, describe(arg))
		}
	}
	if len(p.subparsers) > 0 {
		fmt.Fprint(tw, "\nSubcommands:\n")
		for _, s := range p.subparsers {
			fmt.Fprintf(tw, "  %s\t%s\n", s.name, s.description)
		}
	}
	tw.Flush()

	if p.epilog != "" {
		sb.WriteString("\n" + p.epilog + "\n")
	}
	return sb.String()
}

// visibleNames returns the names of the argument at idx that still resolve
// to it.
func (p *Parser) visibleNames(idx int) []string {
	arg := p.reg.args[idx]
	var names []string
	for _, n := range arg.names {
		if p.reg.index[n] == idx {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return arg.names[:1]
	}
	return names
}

func metavars(arg *Argument) string {
	switch {
	case arg.arity.Max == Unbounded:
		if arg.arity.Min == 0 {
			return "[" + arg.metavar + "...]"
		}
		return arg.metavar + "..."
	case arg.arity.Min == arg.arity.Max:
		return strings.TrimSpace(strings.Repeat(arg.metavar+" ", arg.arity.Min))
	default:
		return arg.metavar + "{" + arg.arity.String() + "}"
	}
}

func positionalUsage(arg *Argument) string {
	name := arg.names[0]
	if arg.metavar != "VAR" {
		name = arg.metavar
	}
	switch {
	case arg.arity.Max == Unbounded && arg.arity.Min == 0:
		return "[" + name + "...]"
	case arg.arity.Max == Unbounded:
		return name + "..."
	case arg.arity.Min == 0:
		return "[" + name + "]"
	}
	return name
}

func describe(arg *Argument) string {
	parts := []string{arg.help}
	if arg.hasDefault() && arg.arity.Max > 0 {
		vals := make([]string, len(arg.defaults))
		for i, d := range arg.defaults {
			vals[i] = d.String()
			if d.Kind() == KindString {
				vals[i] = fmt.Sprintf("%q", vals[i])
			}
		}
		parts = append(parts, "[default: "+strings.Join(vals, " ")+"]")
	}
	if arg.choices != nil {
		parts = append(parts, "[choices: "+arg.choiceString()+"]")
	}
	if arg.required {
		parts = append(parts, "[required]")
	}
	if arg.repeatable {
		parts = append(parts, "[may be repeated]")
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
