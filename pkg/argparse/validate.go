// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"

	"tailscale.com/util/set"
)

// validate checks every argument in declaration order and returns the first
// violation. A mutually exclusive group is checked when its first member is
// reached.
func (p *Parser) validate() error {
	memberOf := make(map[int]*Group)
	for _, g := range p.groups {
		for _, m := range g.members {
			memberOf[m] = g
		}
	}
	checked := make(set.Set[*Group])
	for idx, arg := range p.reg.args {
		if !p.reg.reachable(idx) {
			continue
		}
		if g, ok := memberOf[idx]; ok && !checked.Contains(g) {
			checked.Add(g)
			if err := g.check(&p.reg); err != nil {
				return err
			}
		}
		if err := arg.validate(); err != nil {
			return err
		}
	}
	// Groups whose members were all redeclared away.
	for _, g := range p.groups {
		if !checked.Contains(g) {
			if err := g.check(&p.reg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Argument) validate() error {
	n := a.count
	switch {
	case a.positional:
		if !a.arity.contains(n) && !a.hasDefault() {
			return arityError(ErrArityMismatch, a.names[0], a.arity, n)
		}
	case a.used:
		if a.required && len(a.values) == 0 && a.hook == nil && !a.hasDefault() {
			return newError(ErrNoValueProvided, a.usedName, "%s: no value provided.", a.usedName)
		}
		if !a.repeatable && !a.hasDefault() && !a.arity.contains(n) && a.arity.Max > 0 {
			return arityError(ErrArityMismatch, a.usedName, a.arity, n)
		}
	default:
		if a.required && !a.hasDefault() {
			return newError(ErrRequiredArgumentMissing, a.names[0], "%s: required.", a.names[0])
		}
	}
	if a.choices != nil {
		for _, d := range a.defaults {
			if _, ok := a.matchChoice(d); !ok {
				return &Error{
					Kind: ErrInvalidChoice,
					Name: a.names[0],
					Msg:  fmt.Sprintf("Invalid default value %q - allowed options: %s", d.String(), a.choiceString()),
				}
			}
		}
	}
	return nil
}

// bind runs the StoreInto bindings of every argument.
func (p *Parser) bind() error {
	for _, arg := range p.reg.args {
		for _, b := range arg.binders {
			if err := b(arg); err != nil {
				return err
			}
		}
	}
	return nil
}
