package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmih06/profilegen/pkg/console"
	"github.com/tmih06/profilegen/pkg/logger"
	"github.com/tmih06/profilegen/pkg/schedule"
	"github.com/tmih06/profilegen/pkg/styles"
)

var runLog = logger.New("cli:run")

// RunScheduleOptions configures the schedule daemon.
type RunScheduleOptions struct {
	Generate GenerateOptions
	// Schedule is a cron expression or human schedule form.
	Schedule string
	// OnStart also runs the pipeline once immediately.
	OnStart bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the generate pipeline once or on a schedule",
		Long: `Run the generate pipeline. Without --schedule this is a plain one-shot
run; with it, profilegen stays up and regenerates on the schedule, the
self-hosted equivalent of the Actions cron trigger.

Schedules accept standard five-field cron ("30 5 * * *"), descriptors
("@daily"), or human forms: "daily", "daily at 07:30", "weekly on monday",
"hourly", "every 30m", "every 6h".

The daemon stops cleanly on SIGINT or SIGTERM.

Examples:
  profilegen run
  profilegen run --schedule daily
  profilegen run --schedule "every 6h" --on-start
  profilegen run --schedule "30 5 * * 1" --skip-loc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			outputDir, _ := cmd.Flags().GetString("output")
			skipLOC, _ := cmd.Flags().GetBool("skip-loc")
			template, _ := cmd.Flags().GetString("template")
			verbose, _ := cmd.Flags().GetBool("verbose")
			scheduleExpr, _ := cmd.Flags().GetString("schedule")
			onStart, _ := cmd.Flags().GetBool("on-start")

			generate := GenerateOptions{
				ConfigPath: configPath,
				OutputDir:  outputDir,
				SkipLOC:    skipLOC,
				Template:   template,
				Verbose:    verbose,
			}
			if scheduleExpr == "" {
				return RunGenerate(cmd.Context(), generate)
			}
			return RunSchedule(cmd.Context(), RunScheduleOptions{
				Generate: generate,
				Schedule: scheduleExpr,
				OnStart:  onStart,
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Directory for the rendered SVG files (default: the config directory)")
	cmd.Flags().Bool("skip-loc", false, "Skip the lines-of-code scan")
	cmd.Flags().String("template", "", "Existing SVG template to update in place instead of rendering cards")
	cmd.Flags().String("schedule", "", "Regenerate on this schedule instead of exiting after one run")
	cmd.Flags().Bool("on-start", false, "With --schedule, also run once immediately")
	return cmd
}

// RunSchedule regenerates the cards on a schedule until interrupted.
func RunSchedule(ctx context.Context, opts RunScheduleOptions) error {
	sched, normalized, err := schedule.Parse(opts.Schedule)
	if err != nil {
		return err
	}
	runLog.Printf("Schedule %q normalized to %q", opts.Schedule, normalized)
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
		fmt.Sprintf("Running on schedule %q (cron %q), press Ctrl+C to stop", opts.Schedule, normalized)))

	daemon := &schedule.Daemon{
		Schedule:   sched,
		RunOnStart: opts.OnStart,
		Job: func(ctx context.Context) error {
			return RunGenerate(ctx, opts.Generate)
		},
		OnNext: func(next time.Time) {
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
				fmt.Sprintf("Next run at %s", next.Format(time.RFC1123))))
		},
		OnError: func(err error) {
			// Boxed so a failure is still visible in the scrollback of a
			// daemon that has been running for days.
			fmt.Fprintln(os.Stderr, console.LayoutEmphasisBox(
				console.FormatErrorMessage(fmt.Sprintf("Run failed: %s", err)), styles.ColorError))
		},
	}
	return daemon.Run(ctx)
}
