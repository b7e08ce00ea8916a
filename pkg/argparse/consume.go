// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import "fmt"

// consume binds tokens[cursor:end] to arg as far as its arity allows and
// returns the cursor past the consumed window.
func (p *Parser) consume(arg *Argument, tokens []string, cursor, end int, usedName string) (int, error) {
	if arg.used && !arg.repeatable {
		return cursor, newError(ErrDuplicateArgument, usedName, "Duplicate argument: %s", usedName)
	}
	arg.used = true
	arg.usedName = usedName

	if arg.arity.Max == 0 {
		if arg.implicit.IsValid() {
			arg.values = append(arg.values, arg.implicit)
		}
		p.logger.Debug("flag", "arg", usedName)
		return cursor, nil
	}

	available := end - cursor
	if available < arg.arity.Min {
		if arg.hasDefault() {
			p.logger.Debug("keeping default", "arg", usedName, "available", available)
			return cursor, nil
		}
		return cursor, arityError(ErrTooFewArguments, usedName, arg.arity, available)
	}

	window := min(available, arg.arity.Max)
	if !arg.optionLike {
		for n := 0; n < window; n++ {
			if isOptionLike(tokens[cursor+n]) {
				window = n
				break
			}
		}
	}
	if window < arg.arity.Min {
		if arg.hasDefault() {
			p.logger.Debug("keeping default", "arg", usedName, "window", window)
			return cursor, nil
		}
		return cursor, arityError(ErrTooFewArguments, usedName, arg.arity, window)
	}

	for _, tok := range tokens[cursor : cursor+window] {
		v, ok, err := arg.coerce(tok)
		if err != nil {
			return cursor, err
		}
		if !ok {
			continue
		}
		v, ok = arg.matchChoice(v)
		if !ok {
			return cursor, &Error{
				Kind:  ErrInvalidChoice,
				Name:  arg.names[0],
				Token: tok,
				Msg:   fmt.Sprintf("Invalid argument %q - allowed options: %s", tok, arg.choiceString()),
			}
		}
		arg.values = append(arg.values, v)
	}
	arg.count += window
	p.logger.Debug("consumed", "arg", usedName, "count", window)
	return cursor + window, nil
}
