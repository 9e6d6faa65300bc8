package main

import (
	"os"

	"github.com/readlark/htmlhl/internal/cli"
)

// Version information, set by -ldflags at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	rootCmd := cli.NewRootCommand(Version, Commit, BuildDate)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
