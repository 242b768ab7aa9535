package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			version := info.Version
			if version == "" {
				version = "dev"
			}
			fmt.Printf("profilegen %s\n", version)
			if info.Commit != "" {
				fmt.Printf("  commit: %s\n", info.Commit)
			}
			if info.Date != "" {
				fmt.Printf("  built:  %s\n", info.Date)
			}
			fmt.Printf("  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
