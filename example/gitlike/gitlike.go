// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/yeetrun/argparse/pkg/argparse"
)

func main() {
	git := argparse.New("git", argparse.WithVersion("2.45.0"), argparse.WithProximity(1))
	git.AddArgument("-C").Metavar("PATH").Default(".").Help("run as if started in PATH")

	var force bool
	add := argparse.New("add", argparse.WithDescription("Add file contents to the index"))
	argparse.StoreInto(add.AddArgument("-f", "--force").Flag(), &force)
	add.AddArgument("pathspec").NargsPattern(argparse.NargsAny)

	commit := argparse.New("commit", argparse.WithDescription("Record changes to the repository"))
	commit.AddArgument("-m", "--message").Required().Append()
	commit.AddArgument("--date").Duration().Help("backdate by this much")
	g := commit.AddMutuallyExclusiveGroup(false)
	g.AddArgument("--amend").Flag()
	g.AddArgument("--fixup")

	git.AddSubparser(add).AddSubparser(commit)

	if err := git.Parse(os.Args); err != nil {
		if errors.Is(err, argparse.ErrHelp) || errors.Is(err, argparse.ErrVersion) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, git.Usage())
		os.Exit(2)
	}

	dir, _ := argparse.Get[string](git, "-C")
	switch {
	case git.IsSubcommandUsed("add"):
		paths, _ := argparse.GetSlice[string](add, "pathspec")
		fmt.Printf("add in %s: %q (force=%v)\n", dir, paths, force)
	case git.IsSubcommandUsed("commit"):
		msgs, _ := argparse.GetSlice[string](commit, "-m")
		fmt.Printf("commit in %s: %q\n", dir, msgs)
		if d, ok, _ := argparse.Present[time.Duration](commit, "--date"); ok {
			fmt.Printf("  dated %s ago\n", d)
		}
	default:
		fmt.Println(git.Help())
	}
}
