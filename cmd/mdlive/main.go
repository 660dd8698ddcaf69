// Package main is the entry point for the mdlive CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/mdlive/internal/cli"
	"github.com/yaklabco/mdlive/internal/logging"
)

// Build-time variables set via ldflags.
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
		// ErrReplayFailed only selects the exit code; the report says the rest.
		if !errors.Is(err, cli.ErrReplayFailed) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
