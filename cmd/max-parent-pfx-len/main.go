// Package main is the entry point for the max-parent-pfx-len CLI.
//
// This binary computes the shortest parent prefix length able to hold a
// set of child prefixes. It delegates all functionality to the internal/cli
// package, which defines the cobra command.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process. During development, they default to "dev",
// "none", and "unknown" respectively.
package main

import (
	"os"

	"github.com/shinji-kodama/max-parent-pfx-len/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	rootCmd.SetArgs(cli.NormalizeArgs(os.Args[1:]))
	cli.Execute(rootCmd)
}
