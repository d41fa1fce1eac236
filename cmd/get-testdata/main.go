// Package main is the entry point for the get-testdata CLI.
//
// The binary acquires the model IR fixtures used by the stress-test
// suite. It delegates all functionality to the internal/cli package,
// which defines the cobra command.
package main

import (
	"github.com/omz-tools/get-testdata/internal/cli"
)

// version, commit, and date are set by the release process at build time
// via ldflags. They provide binary identification for --version output.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Inject build-time version info into the CLI package. This keeps
	// main.go minimal and the ldflags wiring in one place.
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
