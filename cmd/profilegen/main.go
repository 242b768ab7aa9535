// Command profilegen generates GitHub profile README stats cards.
package main

import (
	"fmt"
	"os"

	"github.com/tmih06/profilegen/pkg/cli"
	"github.com/tmih06/profilegen/pkg/console"
)

// Build metadata, injected with -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
