// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
)

// dispatch walks tokens[1:] and routes each token to a positional slot, an
// optional argument or a subparser. The first error stops the walk. With
// known set, unrecognised tokens are collected instead.
func (p *Parser) dispatch(tokens []string, known bool) ([]string, error) {
	var unknown []string
	pos := 0
	end := len(tokens)
	for i := 1; i < end; {
		tok := tokens[i]

		if tok == endOfOptions {
			rest, err := p.consumeTrailing(tokens, i+1, end, pos, known)
			return append(unknown, rest...), err
		}

		if isPositionalShaped(tok) {
			if pos == len(p.reg.positional) {
				if sub, ok := p.subIndex[tok]; ok {
					p.logger.Debug("subcommand", "parser", p.name, "sub", tok)
					p.selected = sub
					rest, err := sub.parse(tokens[i:end], known)
					return append(unknown, rest...), err
				}
				if known {
					unknown = append(unknown, tok)
					i++
					continue
				}
				return unknown, p.unexpectedPositional(tok)
			}
			arg := p.reg.args[p.reg.positional[pos]]
			pos++
			// SRC... DST: the final single positional takes the last token.
			if pos == len(p.reg.positional)-1 && arg.arity == (Arity{1, Unbounded}) {
				last := p.reg.args[p.reg.positional[pos]]
				if last.arity == (Arity{1, 1}) {
					if i+1 >= end {
						return unknown, newError(ErrTooFewArguments, last.names[0], "Missing %s", last.names[0])
					}
					if _, err := p.consume(last, tokens, end-1, end, last.names[0]); err != nil {
						return unknown, err
					}
					end--
					pos++
				}
			}
			next, err := p.consume(arg, tokens, i, end, arg.names[0])
			if err != nil {
				return unknown, err
			}
			i = next
			continue
		}

		if arg, ok := p.reg.lookup(tok); ok {
			next, err := p.consumeOption(arg, tokens, i+1, end, tok)
			if err != nil {
				return unknown, err
			}
			i = next
			continue
		}

		if name, value, ok := splitAssignment(tok); ok {
			if arg, ok := p.reg.lookup(name); ok {
				if arg.arity.Max == 0 {
					return unknown, arityError(ErrArityMismatch, name, arg.arity, 1)
				}
				if _, err := p.consumeOption(arg, []string{value}, 0, 1, name); err != nil {
					return unknown, err
				}
				i++
				continue
			}
		}

		if isCompoundShortFlag(tok) {
			if args, names, ok := p.expandCompound(tok); ok {
				next, err := p.consumeCompound(args, names, tokens, i+1, end)
				if err != nil {
					return unknown, err
				}
				i = next
				continue
			}
		}

		if name := p.approximate(tok); name != "" {
			arg, _ := p.reg.lookup(name)
			p.logger.Debug("approximate match", "token", tok, "arg", name)
			next, err := p.consumeOption(arg, tokens, i+1, end, name)
			if err != nil {
				return unknown, err
			}
			i = next
			continue
		}

		if known {
			unknown = append(unknown, tok)
			i++
			continue
		}
		return unknown, unknownArgument(tok, suggestOption(tok, p.reg.optionNames()))
	}
	return unknown, nil
}

func (p *Parser) consumeOption(arg *Argument, tokens []string, cursor, end int, usedName string) (int, error) {
	next, err := p.consume(arg, tokens, cursor, end, usedName)
	if err != nil {
		return next, err
	}
	return next, p.fire(arg)
}

// expandCompound splits "-abc" into -a, -b and -c. ok is false unless every
// letter names a declared optional argument.
func (p *Parser) expandCompound(tok string) (args []*Argument, names []string, ok bool) {
	for _, c := range tok[1:] {
		name := "-" + string(c)
		arg, found := p.reg.lookup(name)
		if !found || arg.positional {
			return nil, nil, false
		}
		args = append(args, arg)
		names = append(names, name)
	}
	return args, names, true
}

// consumeCompound binds the flags of an expanded bundle in order. Flags with
// a nonzero arity take whole tokens following the bundle.
func (p *Parser) consumeCompound(args []*Argument, names []string, tokens []string, cursor, end int) (int, error) {
	for i, arg := range args {
		next, err := p.consumeOption(arg, tokens, cursor, end, names[i])
		if err != nil {
			return cursor, err
		}
		cursor = next
	}
	return cursor, nil
}

// approximate returns the declared option closest to tok when it is within
// the configured proximity.
func (p *Parser) approximate(tok string) string {
	if p.proximity <= 0 || !isOptionLike(tok) {
		return ""
	}
	best, d := closest(tok, p.reg.optionNames())
	if d < 0 || d > p.proximity {
		return ""
	}
	return best
}

// consumeTrailing feeds the tokens after "--" to the remaining positional
// slots, accepting values that look like options.
func (p *Parser) consumeTrailing(tokens []string, cursor, end, pos int, known bool) ([]string, error) {
	for ; pos < len(p.reg.positional) && cursor < end; pos++ {
		arg := p.reg.args[p.reg.positional[pos]]
		accepts := arg.optionLike
		arg.optionLike = true
		next, err := p.consume(arg, tokens, cursor, end, arg.names[0])
		arg.optionLike = accepts
		if err != nil {
			return nil, err
		}
		cursor = next
	}
	if cursor == end {
		return nil, nil
	}
	if known {
		return tokens[cursor:end], nil
	}
	return nil, p.unexpectedPositional(tokens[cursor])
}

// unexpectedPositional builds the error for a positional token that has no
// slot left.
func (p *Parser) unexpectedPositional(tok string) error {
	if len(p.subparsers) > 0 {
		names := make([]string, len(p.subparsers))
		for i, s := range p.subparsers {
			names[i] = s.name
		}
		best, _ := closest(tok, names)
		return &Error{
			Kind:       ErrUnknownArgument,
			Token:      tok,
			Suggestion: best,
			Msg:        fmt.Sprintf("Failed to parse '%s', did you mean '%s'", tok, best),
		}
	}
	if len(p.reg.positional) == 0 {
		msg := "Zero positional arguments expected"
		var hint string
		for _, idx := range p.reg.optional {
			arg := p.reg.args[idx]
			if arg.used || arg.hidden || arg.builtin != builtinNone || arg.arity.Max == 0 {
				continue
			}
			hint = arg.usage()
			msg += ", did you mean " + hint
			break
		}
		return &Error{Kind: ErrMaxPositionals, Token: tok, Suggestion: hint, Msg: msg}
	}
	return &Error{
		Kind:  ErrMaxPositionals,
		Token: tok,
		Msg:   fmt.Sprintf("Maximum number of positional arguments exceeded, failed to parse '%s'", tok),
	}
}
