// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argcheck parses a command line against an argument spec file and
// prints what every argument was bound to.
//
//	argcheck [--spec FILE] [--json] [--verbose] [--no-color] -- prog args...
//
// Without --spec, the file is taken from $ARGCHECK_SPEC or found by walking
// up from the current directory looking for argspec.toml or argspec.yaml.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argparse/pkg/argfile"
	"github.com/yeetrun/argparse/pkg/argparse"
	"golang.org/x/term"
)

const specEnv = "ARGCHECK_SPEC"

// Exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitParseError = 2
)

type flagsParsed struct {
	Spec    string `flag:"spec" help:"Argument spec file (ARGCHECK_SPEC)"`
	JSON    bool   `flag:"json" help:"Print bound values as JSON"`
	Verbose bool   `flag:"verbose" help:"Log parser decisions to stderr"`
	NoColor bool   `flag:"no-color" help:"Disable colored output"`
}

var isTerminalFn = term.IsTerminal

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	result, err := yargs.ParseKnownFlags[flagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		printError(stderr, true, err)
		return exitFailure
	}
	flags := result.Flags
	tokens := result.RemainingArgs
	if len(tokens) > 0 && tokens[0] == "--" {
		tokens = tokens[1:]
	}

	logger := log.New(stderr)
	logger.SetPrefix("argcheck")
	logger.SetLevel(log.WarnLevel)
	if flags.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	noColor := flags.NoColor || !writerIsTerminal(stderr)

	path, err := specPath(flags.Spec, getenv)
	if err != nil {
		printError(stderr, noColor, err)
		return exitFailure
	}
	logger.Debug("loading spec", "path", path)
	f, err := argfile.Load(path)
	if err != nil {
		printError(stderr, noColor, err)
		return exitFailure
	}
	p, err := f.Build(
		argparse.WithOutput(stdout),
		argparse.WithLogger(logger),
	)
	if err != nil {
		printError(stderr, noColor, fmt.Errorf("%s: %w", path, err))
		return exitFailure
	}
	if len(tokens) == 0 {
		tokens = []string{p.Name()}
	}

	if err := p.Parse(tokens); err != nil {
		if errors.Is(err, argparse.ErrHelp) || errors.Is(err, argparse.ErrVersion) {
			return exitOK
		}
		printError(stderr, noColor, err)
		fmt.Fprintln(stderr, p.Usage())
		fmt.Fprintf(stderr, "Try '%s --help' for more information\n", p.Name())
		return exitParseError
	}

	r := collect(p)
	if flags.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			printError(stderr, noColor, err)
			return exitFailure
		}
		return exitOK
	}
	printTable(stdout, r)
	return exitOK
}

// specPath resolves the spec file from the flag, the environment, or the
// nearest argspec file above the working directory.
func specPath(flag string, getenv func(string) string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := getenv(specEnv); env != "" {
		return env, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path, err := argfile.Find(wd)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("no argspec.toml or argspec.yaml found; use --spec or $%s", specEnv)
	}
	return path, err
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminalFn(int(f.Fd()))
}

func printError(w io.Writer, noColor bool, err error) {
	c := color.New(color.FgRed)
	if noColor {
		c.DisableColor()
	}
	c.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

type report struct {
	Commands  []string      `json:"commands"`
	Arguments []boundResult `json:"arguments"`
}

type boundResult struct {
	Command  string `json:"command,omitempty"`
	Name     string `json:"name"`
	Used     bool   `json:"used"`
	UsedName string `json:"usedName,omitempty"`
	Values   []any  `json:"values"`
}

// collect walks p and the chain of selected subcommands.
func collect(p *argparse.Parser) report {
	var r report
	for cur, depth := p, 0; cur != nil; cur, depth = cur.Subcommand(), depth+1 {
		cmd := ""
		if depth > 0 {
			r.Commands = append(r.Commands, cur.Name())
			cmd = strings.Join(r.Commands, " ")
		}
		for _, arg := range cur.Arguments() {
			vals := arg.Values()
			out := make([]any, len(vals))
			for i, v := range vals {
				if v.Kind() == argparse.KindDuration {
					out[i] = v.String()
				} else {
					out[i] = v.Interface()
				}
			}
			r.Arguments = append(r.Arguments, boundResult{
				Command:  cmd,
				Name:     arg.Name(),
				Used:     arg.IsUsed(),
				UsedName: arg.UsedName(),
				Values:   out,
			})
		}
	}
	return r
}

func printTable(w io.Writer, r report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMMAND\tARGUMENT\tUSED\tVALUES")
	for _, a := range r.Arguments {
		cmd := a.Command
		if cmd == "" {
			cmd = "-"
		}
		vals := make([]string, len(a.Values))
		for i, v := range a.Values {
			vals[i] = fmt.Sprint(v)
		}
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", cmd, a.Name, a.Used, strings.Join(vals, " "))
	}
	tw.Flush()
}
