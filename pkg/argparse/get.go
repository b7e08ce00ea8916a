// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Scalar lists the Go types a Value can be read back as.
type Scalar interface {
	string | bool | int | int64 | uint | uint64 | float32 | float64 | time.Duration
}

// convert reads v as T. ok is false when v's kind does not fit T.
func convert[T Scalar](v Value) (out T, ok bool) {
	switch p := any(&out).(type) {
	case *string:
		*p, ok = v.s, v.kind == KindString
	case *bool:
		*p, ok = v.b, v.kind == KindBool
	case *int:
		*p, ok = int(v.i), v.kind == KindInt && v.i >= math.MinInt && v.i <= math.MaxInt
	case *int64:
		*p, ok = v.i, v.kind == KindInt
	case *uint:
		*p, ok = uint(v.u), v.kind == KindUint && v.u <= math.MaxUint
	case *uint64:
		*p, ok = v.u, v.kind == KindUint
	case *float32:
		*p, ok = float32(v.f), v.kind == KindFloat
	case *float64:
		*p, ok = v.f, v.kind == KindFloat
	case *time.Duration:
		*p, ok = time.Duration(v.i), v.kind == KindDuration
	}
	if !ok {
		var zero T
		return zero, false
	}
	return out, true
}

func typeMismatch[T Scalar](name string, v Value) *Error {
	var zero T
	return &Error{
		Kind: ErrTypeMismatch,
		Name: name,
		Msg:  fmt.Sprintf("%s: cannot read %s value %q as %T", name, v.Kind(), v.String(), zero),
	}
}

func (p *Parser) parsedArgument(name string) (*Argument, error) {
	if !p.parsed {
		return nil, newError(ErrNotParsed, name, "Nothing parsed, no arguments are available.")
	}
	arg, ok := p.reg.lookup(name)
	if !ok {
		return nil, newError(ErrNoSuchArgument, name, "No such argument: %s", name)
	}
	return arg, nil
}

// Get returns the first value bound to name, or its first default.
func Get[T Scalar](p *Parser, name string) (T, error) {
	var zero T
	arg, err := p.parsedArgument(name)
	if err != nil {
		return zero, err
	}
	var v Value
	switch {
	case len(arg.values) > 0:
		v = arg.values[0]
	case arg.hasDefault():
		v = arg.defaults[0]
	default:
		return zero, newError(ErrNoValueProvided, name, "No value provided for '%s'.", name)
	}
	out, ok := convert[T](v)
	if !ok {
		return zero, typeMismatch[T](name, v)
	}
	return out, nil
}

// GetSlice returns every value bound to name, or the defaults when it was
// not given. An argument declared with Remaining that received nothing and
// has no default is an error; other arguments yield an empty slice.
func GetSlice[T Scalar](p *Parser, name string) ([]T, error) {
	arg, err := p.parsedArgument(name)
	if err != nil {
		return nil, err
	}
	vals := arg.values
	if len(vals) == 0 {
		vals = arg.defaults
	}
	if len(vals) == 0 && arg.optionLike {
		return nil, newError(ErrNoValueProvided, name, "No value provided for '%s'.", name)
	}
	return convertAll[T](name, vals)
}

func convertAll[T Scalar](name string, vals []Value) ([]T, error) {
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		x, ok := convert[T](v)
		if !ok {
			return nil, typeMismatch[T](name, v)
		}
		out = append(out, x)
	}
	return out, nil
}

// Present returns the first value supplied on the command line for name.
// ok is false when the argument was not given, even if it has a default.
func Present[T Scalar](p *Parser, name string) (v T, ok bool, err error) {
	arg, err := p.parsedArgument(name)
	if err != nil {
		return v, false, err
	}
	if !arg.used || len(arg.values) == 0 {
		return v, false, nil
	}
	v, ok = convert[T](arg.values[0])
	if !ok {
		return v, false, typeMismatch[T](name, arg.values[0])
	}
	return v, true, nil
}

// IsUsed reports whether name was matched by the last Parse. Unknown names
// report false.
func (p *Parser) IsUsed(name string) bool {
	arg, ok := p.reg.lookup(name)
	return ok && arg.used
}

// StoreInto writes the argument's value into dst after every successful
// Parse. dst is left alone when there is neither a value nor a default.
func StoreInto[T Scalar](arg *Argument, dst *T) *Argument {
	arg.binders = append(arg.binders, func(a *Argument) error {
		vals := a.values
		if len(vals) == 0 {
			vals = a.defaults
		}
		if len(vals) == 0 {
			return nil
		}
		v, ok := convert[T](vals[0])
		if !ok {
			return typeMismatch[T](a.names[0], vals[0])
		}
		*dst = v
		return nil
	})
	return arg
}

// StoreSliceInto is StoreInto for every value of the argument.
func StoreSliceInto[T Scalar](arg *Argument, dst *[]T) *Argument {
	arg.binders = append(arg.binders, func(a *Argument) error {
		vals := a.values
		if len(vals) == 0 {
			vals = a.defaults
		}
		if len(vals) == 0 {
			return nil
		}
		out, err := convertAll[T](a.names[0], vals)
		if err != nil {
			return err
		}
		*dst = out
		return nil
	})
	return arg
}

// UsedName returns the name the argument was matched by, or "".
func (a *Argument) UsedName() string { return a.usedName }

// IsUsed reports whether the argument was matched by the last Parse.
func (a *Argument) IsUsed() bool { return a.used }

// Values returns the values bound by the last Parse, falling back to the
// defaults.
func (a *Argument) Values() []Value {
	if len(a.values) > 0 {
		return slices.Clone(a.values)
	}
	return slices.Clone(a.defaults)
}
