// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argparse parses command lines against a table of declared
// arguments, in the style of Python's argparse.
//
// Arguments are declared on a Parser and configured with chainable
// methods. Names that start with "-" declare optional arguments; any other
// name declares a positional argument, bound in declaration order.
//
//	p := argparse.New("prog", argparse.WithVersion("1.2.0"))
//	p.AddArgument("--config").Default("config.yml")
//	p.AddArgument("-v", "--verbose").Flag()
//	p.AddArgument("numbers").Nargs(3).Int()
//
//	if err := p.Parse(os.Args); err != nil {
//	    if errors.Is(err, argparse.ErrHelp) || errors.Is(err, argparse.ErrVersion) {
//	        return
//	    }
//	    log.Fatal(err)
//	}
//	cfg, _ := argparse.Get[string](p, "--config")
//	nums, _ := argparse.GetSlice[int64](p, "numbers")
//
// # Token Syntax
//
//   - "--name value", "--name=value" and "-n=value"
//   - bundled short flags: "-abc" is "-a -b -c"; a bundled flag that takes
//     values reads them from the following tokens
//   - "--" ends option processing; everything after it is positional
//   - "-" and negative numbers such as "-1" or "-.5" are values, not options
//
// # Arity
//
// Nargs, NargsRange and NargsPattern bound how many tokens one occurrence
// consumes. Consumption stops early at the first token that looks like an
// option unless the argument was declared with Remaining.
//
// # Errors
//
// Parse returns an *Error whose Kind is one of the Err* sentinels, so
// callers can branch with errors.Is. The built-in -h/--help and
// -v/--version arguments print to the parser output and return ErrHelp or
// ErrVersion.
//
// # Subcommands
//
// AddSubparser attaches another Parser. The first positional token that no
// positional slot wants selects the subparser with that name, and every
// token from there on is parsed by it.
package argparse
