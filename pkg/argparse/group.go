// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"strings"
)

// Group is a mutually exclusive set of optional arguments. At most one
// member may be given; a required group needs exactly one.
type Group struct {
	p        *Parser
	required bool
	members  []int
}

// AddMutuallyExclusiveGroup creates a group whose members are declared with
// Group.AddArgument.
func (p *Parser) AddMutuallyExclusiveGroup(required bool) *Group {
	g := &Group{p: p, required: required}
	p.groups = append(p.groups, g)
	return g
}

// AddArgument declares an argument on the owning parser and makes it a
// member of g.
func (g *Group) AddArgument(names ...string) *Argument {
	arg := g.p.AddArgument(names...)
	if arg.positional {
		panic(fmt.Sprintf("argparse: positional %s cannot be in a mutually exclusive group", arg.names[0]))
	}
	g.members = append(g.members, g.p.reg.indexOf(arg))
	return arg
}

func (g *Group) check(r *registry) error {
	var first *Argument
	for _, idx := range g.members {
		arg := r.args[idx]
		if !arg.used {
			continue
		}
		if first == nil {
			first = arg
			continue
		}
		return &Error{
			Kind: ErrMutuallyExclusive,
			Name: arg.names[0],
			Msg:  fmt.Sprintf("Argument '%s' not allowed with '%s'", arg.usage(), first.usage()),
		}
	}
	if first == nil && g.required {
		quoted := make([]string, len(g.members))
		for i, idx := range g.members {
			quoted[i] = "'" + r.args[idx].usage() + "'"
		}
		return &Error{
			Kind: ErrRequiredGroupMissing,
			Msg:  fmt.Sprintf("One of the arguments %s is required", strings.Join(quoted, " or ")),
		}
	}
	return nil
}

func (g *Group) clone(p *Parser) *Group {
	c := *g
	c.p = p
	c.members = append([]int(nil), g.members...)
	return &c
}
