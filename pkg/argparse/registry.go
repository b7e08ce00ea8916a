// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"maps"
	"slices"

	"tailscale.com/util/mak"
)

// registry stores arguments in an arena. The name index and both
// partitions hold arena indices, so a copy only needs fresh slices.
type registry struct {
	args       []*Argument
	positional []int
	optional   []int
	index      map[string]int
}

// register appends arg and indexes its names. A name that is already
// indexed is rebound to arg.
func (r *registry) register(arg *Argument) int {
	idx := len(r.args)
	r.args = append(r.args, arg)
	if arg.positional {
		r.positional = append(r.positional, idx)
	} else {
		r.optional = append(r.optional, idx)
	}
	for _, n := range arg.names {
		mak.Set(&r.index, n, idx)
	}
	return idx
}

func (r *registry) alias(name string, idx int) {
	mak.Set(&r.index, name, idx)
}

func (r *registry) lookup(name string) (*Argument, bool) {
	idx, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.args[idx], true
}

func (r *registry) indexOf(arg *Argument) int {
	return slices.Index(r.args, arg)
}

// reachable reports whether any name still resolves to the argument at idx.
func (r *registry) reachable(idx int) bool {
	for _, n := range r.args[idx].names {
		if r.index[n] == idx {
			return true
		}
	}
	return false
}

// optionNames lists every visible optional name in registration order.
func (r *registry) optionNames() []string {
	var names []string
	for _, idx := range r.optional {
		arg := r.args[idx]
		if arg.hidden {
			continue
		}
		for _, n := range arg.names {
			if r.index[n] == idx {
				names = append(names, n)
			}
		}
	}
	return names
}

func (r *registry) clone() registry {
	c := registry{
		args:       make([]*Argument, len(r.args)),
		positional: slices.Clone(r.positional),
		optional:   slices.Clone(r.optional),
		index:      maps.Clone(r.index),
	}
	for i, a := range r.args {
		c.args[i] = a.clone()
	}
	return c
}

func (r *registry) reset() {
	for _, a := range r.args {
		a.reset()
	}
}
