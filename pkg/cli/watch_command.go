package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmih06/profilegen/pkg/config"
	"github.com/tmih06/profilegen/pkg/console"
	"github.com/tmih06/profilegen/pkg/logger"
	"github.com/tmih06/profilegen/pkg/schedule"
)

var watchCmdLog = logger.New("cli:watch")

// WatchOptions configures watch mode.
type WatchOptions struct {
	Generate GenerateOptions
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the cards when the config or avatar changes",
		Long: `Watch the config file, and the avatar image when one is configured, and
rerun the generate pipeline after edits settle. Bursts of editor writes
are debounced into a single regeneration.

The lines-of-code scan is skipped by default to keep the loop fast and
inside API rate limits; pass --loc to include it.

Stops cleanly on SIGINT or SIGTERM.

Examples:
  profilegen watch
  profilegen watch --debounce 2s
  profilegen watch --loc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			outputDir, _ := cmd.Flags().GetString("output")
			template, _ := cmd.Flags().GetString("template")
			verbose, _ := cmd.Flags().GetBool("verbose")
			includeLOC, _ := cmd.Flags().GetBool("loc")
			debounce, _ := cmd.Flags().GetDuration("debounce")
			return RunWatch(cmd.Context(), WatchOptions{
				Generate: GenerateOptions{
					ConfigPath: configPath,
					OutputDir:  outputDir,
					SkipLOC:    !includeLOC,
					Template:   template,
					Verbose:    verbose,
				},
				Debounce: debounce,
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Directory for the rendered SVG files (default: the config directory)")
	cmd.Flags().String("template", "", "Existing SVG template to update in place instead of rendering cards")
	cmd.Flags().Bool("loc", false, "Include the lines-of-code scan on each regeneration")
	cmd.Flags().Duration("debounce", schedule.DefaultDebounce, "Quiet period before a change triggers regeneration")
	return cmd
}

// RunWatch regenerates the cards whenever the config or avatar changes,
// until interrupted.
func RunWatch(ctx context.Context, opts WatchOptions) error {
	path, err := resolveConfigPath(opts.Generate.ConfigPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	paths := []string{path}
	if avatar := cfg.AvatarPath(); avatar != "" {
		paths = append(paths, avatar)
	}

	// Later runs reuse the discovered file instead of re-discovering, so the
	// watched file and the generated one cannot drift apart.
	generate := opts.Generate
	generate.ConfigPath = path

	watched := make([]string, len(paths))
	for i, p := range paths {
		watched[i] = console.ToRelativePath(p)
	}
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
		fmt.Sprintf("Watching %s, press Ctrl+C to stop", strings.Join(watched, ", "))))
	watchCmdLog.Printf("Watching %d path(s) with %s debounce", len(paths), opts.Debounce)

	watcher := &schedule.Watcher{
		Paths:    paths,
		Debounce: opts.Debounce,
		Job: func(ctx context.Context) error {
			return RunGenerate(ctx, generate)
		},
		OnChange: func(changed string) {
			console.ClearScreen()
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
				fmt.Sprintf("Change detected in %s, regenerating...", console.ToRelativePath(changed))))
		},
		OnError: func(err error) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		},
	}
	return watcher.Run(ctx)
}
