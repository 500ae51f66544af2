// Package main is the entry point for the projtrend CLI
package main

import (
	"os"

	"github.com/spektr-org/projtrend/cmd/projtrend/commands"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	commands.SetVersion(version)
	os.Exit(commands.Execute())
}
