// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error returned by Parse or a getter matches exactly one of
// these with errors.Is.
var (
	ErrUnknownArgument         = errors.New("unknown argument")
	ErrDuplicateArgument       = errors.New("duplicate argument")
	ErrTooFewArguments         = errors.New("too few arguments")
	ErrArityMismatch           = errors.New("arity mismatch")
	ErrMaxPositionals          = errors.New("too many positional arguments")
	ErrRequiredArgumentMissing = errors.New("required argument missing")
	ErrNoValueProvided         = errors.New("no value provided")
	ErrInvalidChoice           = errors.New("invalid choice")
	ErrMutuallyExclusive       = errors.New("mutually exclusive arguments")
	ErrRequiredGroupMissing    = errors.New("required group missing")
	ErrCoercion                = errors.New("coercion failed")
	ErrNoSuchArgument          = errors.New("no such argument")
	ErrTypeMismatch            = errors.New("type mismatch")
	ErrNotParsed               = errors.New("nothing parsed")
)

// Causes wrapped by ErrCoercion errors produced by the built-in coercions.
var (
	ErrInvalidFormat = errors.New("invalid format")
	ErrOutOfRange    = errors.New("out of range")
)

// Control-flow sentinels returned by Parse when a default argument fired.
var (
	// ErrHelp is returned after the help text was written to the parser output.
	ErrHelp = errors.New("help requested")

	// ErrVersion is returned after the version was written to the parser output.
	ErrVersion = errors.New("version requested")
)

// Error is the structured failure returned by Parse and by the getters.
type Error struct {
	Kind       error  // One of the Err* kinds above
	Name       string // Argument name involved, if any
	Token      string // Offending input token, if any
	Suggestion string // Closest known name, if one was close enough
	Msg        string // Human readable message
	Err        error  // Underlying cause (coercion errors)
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, name, format string, args ...any) *Error {
	return &Error{Kind: kind, Name: name, Msg: fmt.Sprintf(format, args...)}
}

func unknownArgument(token, suggestion string) *Error {
	msg := "Unknown argument: " + token
	if suggestion != "" {
		msg += fmt.Sprintf(", did you mean '%s'", suggestion)
	}
	return &Error{Kind: ErrUnknownArgument, Token: token, Suggestion: suggestion, Msg: msg}
}

func arityError(kind error, name string, arity Arity, got int) *Error {
	return &Error{
		Kind: kind,
		Name: name,
		Msg:  fmt.Sprintf("%s: expected %s argument(s). %d provided.", name, arity, got),
	}
}
