// Package cli wires the profilegen commands: the generate pipeline, the
// stats views, the init scaffold, repository validation, and the schedule
// and watch daemons.
package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo identifies the binary; main injects the values at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand builds the profilegen command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profilegen",
		Short: "Generate GitHub profile README stats cards",
		Long: `profilegen turns your GitHub activity into SVG stats cards for a
profile README: lifetime contributions, streaks, lines of code, and an
ASCII-art rendering of your avatar, styled like a neofetch dump.

Configuration lives in info.json (or info.yml) next to the README. A GitHub
token is read from ACCESS_TOKEN, GH_TOKEN, or GITHUB_TOKEN, with .env
support for local runs.

Examples:
  profilegen init                      # interactive setup
  profilegen generate                  # regenerate the cards
  profilegen stats --json              # raw numbers for scripting
  profilegen run --schedule daily      # keep them fresh from a shell
  profilegen watch                     # regenerate on config edits`,
		Version:       info.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to info.json (default: discovered in the current directory)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewStatsCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewWatchCommand())
	cmd.AddCommand(NewVersionCommand(info))

	return cmd
}

// addJSONFlag registers the shared --json flag on commands that can emit
// machine-readable output.
func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output results in JSON format")
}
