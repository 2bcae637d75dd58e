// Package main is the entry point for the sidconv CLI.
package main

import (
	"os"

	"github.com/yaklabco/sidconv/internal/cli"
	"github.com/yaklabco/sidconv/internal/logging"

	// Import rules package to register built-in rules via init().
	_ "github.com/yaklabco/sidconv/pkg/rewrite/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Exit-status sentinels were already reported.
		if !cli.IsSilent(err) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
