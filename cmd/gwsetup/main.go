// Package main is the entry point for the gwsetup CLI.
//
// gwsetup provisions the Google Cloud side of a Workspace migration: a
// dedicated project, the migration APIs, a service account with
// domain-wide delegation, and its credential key. What cannot be
// automated lands in a reference file for the Workspace admin.
//
// For detailed usage information, run:
//
//	gwsetup --help
package main

import (
	"fmt"
	"os"

	"github.com/migratory/gwsetup/cmd/gwsetup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
