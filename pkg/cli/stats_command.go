package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmih06/profilegen/pkg/config"
	"github.com/tmih06/profilegen/pkg/console"
	"github.com/tmih06/profilegen/pkg/envutil"
	"github.com/tmih06/profilegen/pkg/github"
	"github.com/tmih06/profilegen/pkg/logger"
	"github.com/tmih06/profilegen/pkg/stats"
)

var statsLog = logger.New("cli:stats")

const (
	defaultRefreshSeconds = 300
	minRefreshSeconds     = 30
	maxRefreshSeconds     = 3600
)

// StatsOptions configures the stats command.
type StatsOptions struct {
	ConfigPath string
	JSON       bool
	Watch      bool
	Interval   time.Duration
	Verbose    bool
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	defaultInterval := time.Duration(envutil.GetIntFromEnv("PROFILEGEN_REFRESH",
		defaultRefreshSeconds, minRefreshSeconds, maxRefreshSeconds, statsLog)) * time.Second

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Fetch and display the profile statistics",
		Long: `Fetch the account numbers, contribution totals, and streaks without
touching any files. The lines-of-code scan is left to generate, so this
stays fast enough to run on a whim.

Examples:
  profilegen stats
  profilegen stats --json | jq .streaks.longest
  profilegen stats --watch --interval 1m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			jsonOutput, _ := cmd.Flags().GetBool("json")
			watch, _ := cmd.Flags().GetBool("watch")
			interval, _ := cmd.Flags().GetDuration("interval")
			verbose, _ := cmd.Flags().GetBool("verbose")
			return RunStats(cmd.Context(), StatsOptions{
				ConfigPath: configPath,
				JSON:       jsonOutput,
				Watch:      watch,
				Interval:   interval,
				Verbose:    verbose,
			})
		},
	}
	addJSONFlag(cmd)
	cmd.Flags().Bool("watch", false, "Show a live dashboard that refreshes on an interval")
	cmd.Flags().Duration("interval", defaultInterval, "Refresh interval for --watch")
	cmd.MarkFlagsMutuallyExclusive("json", "watch")
	return cmd
}

// RunStats fetches a snapshot and renders it as tables or JSON, or hands off
// to the live dashboard in watch mode.
func RunStats(ctx context.Context, opts StatsOptions) error {
	cfg, err := resolveConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	client, err := github.NewClient(config.ResolveToken())
	if err != nil {
		return err
	}

	if opts.Watch {
		interval := opts.Interval
		if interval < minRefreshSeconds*time.Second {
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
				fmt.Sprintf("Refresh interval raised to %ds to stay inside API rate limits", minRefreshSeconds)))
			interval = minRefreshSeconds * time.Second
		}
		return runStatsDashboard(client, cfg.Username, interval)
	}

	spin := console.NewSpinner(fmt.Sprintf("Fetching statistics for %s...", cfg.Username))
	spin.Start()
	snap, err := fetchSnapshot(ctx, client, cfg.Username, time.Now())
	spin.Stop()
	if err != nil {
		return err
	}

	if opts.JSON {
		fmt.Print(console.RenderStruct(snap.report()))
		return nil
	}

	for i, table := range snap.tables() {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(console.RenderTable(table))
	}
	console.LogVerbose(opts.Verbose, fmt.Sprintf("%d GraphQL queries", snap.Queries))
	return nil
}

// profileSnapshot bundles one full fetch of the numbers the stats views
// show.
type profileSnapshot struct {
	User    *github.UserStats
	Summary *stats.ContributionSummary
	Streaks stats.Streaks
	Fetched time.Time
	Queries int
}

func fetchSnapshot(ctx context.Context, client *github.Client, login string, now time.Time) (*profileSnapshot, error) {
	user, err := client.UserStats(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user statistics: %w", err)
	}
	summary, err := stats.Summary(ctx, client, login, now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contribution history: %w", err)
	}
	statsLog.Printf("Snapshot for %s: %d contributions, %d queries", login, summary.Total, client.QueryCount())
	return &profileSnapshot{
		User:    user,
		Summary: summary,
		Streaks: stats.CalculateStreaks(summary.Days, now),
		Fetched: now,
		Queries: client.QueryCount(),
	}, nil
}

func (s *profileSnapshot) displayName() string {
	if s.User.Name != "" {
		return s.User.Name
	}
	return s.User.Login
}

// tables renders the snapshot as the three console tables the stats command
// prints.
func (s *profileSnapshot) tables() []console.TableConfig {
	user := s.User
	account := console.TableConfig{
		Title:   fmt.Sprintf("%s (@%s)", s.displayName(), user.Login),
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Joined", stats.FormatDate(user.CreatedAt)},
			{"Followers", stats.CommaFormat(user.Followers)},
			{"Following", stats.CommaFormat(user.Following)},
			{"Repositories", stats.CommaFormat(user.RepoCount)},
			{"Stars received", stats.CommaFormat(user.Stargazers)},
			{"Forks received", stats.CommaFormat(user.Forks)},
			{"Disk usage", fmt.Sprintf("%.1f MiB", user.DiskUsageMiB())},
		},
	}

	contributions := console.TableConfig{
		Title:   contributionsTitle(s.Summary.Years),
		Headers: []string{"Type", "Count"},
		Rows: [][]string{
			{"Commits", stats.CommaFormat(s.Summary.Commits)},
			{"Issues", stats.CommaFormat(s.Summary.Issues)},
			{"Pull requests", stats.CommaFormat(s.Summary.PullRequests)},
			{"Reviews", stats.CommaFormat(s.Summary.Reviews)},
		},
		ShowTotal: true,
		TotalRow:  []string{"Total", stats.CommaFormat(s.Summary.Total)},
	}

	streaks := console.TableConfig{
		Title:   "Streaks",
		Headers: []string{"Streak", "Value"},
		Rows: [][]string{
			{"Current", streakSpan(s.Streaks.Current, s.Streaks.CurrentStart, time.Time{})},
			{"Longest", streakSpan(s.Streaks.Longest, s.Streaks.LongestStart, s.Streaks.LongestEnd)},
			{"Best day", fmt.Sprintf("%s (%s)", stats.CommaFormat(s.Streaks.BestCount), stats.FormatDate(s.Streaks.BestDay))},
			{"Daily average", stats.FormatAverage(s.Streaks.Average)},
		},
	}
	if s.Streaks.BestDay.IsZero() {
		streaks.Rows[2][1] = "0"
	}

	return []console.TableConfig{account, contributions, streaks}
}

func contributionsTitle(years []int) string {
	if len(years) == 0 {
		return "Contributions"
	}
	return fmt.Sprintf("Contributions (%d-%d)", years[0], years[len(years)-1])
}

// streakSpan renders "12 days (Mar 03 - Apr 01)"; open-ended streaks show
// only the start date.
func streakSpan(days int, start, end time.Time) string {
	value := fmt.Sprintf("%d day%s", days, stats.FormatPlural(days))
	switch {
	case days == 0 || start.IsZero():
		return value
	case end.IsZero():
		return fmt.Sprintf("%s (since %s)", value, stats.FormatMonthDay(start))
	default:
		return fmt.Sprintf("%s (%s - %s)", value, stats.FormatMonthDay(start), stats.FormatMonthDay(end))
	}
}

// report is the machine-readable shape of the snapshot for --json.
func (s *profileSnapshot) report() statsReport {
	report := statsReport{
		Login:        s.User.Login,
		Name:         s.User.Name,
		JoinedAt:     s.User.CreatedAt.Format(time.RFC3339),
		Followers:    s.User.Followers,
		Following:    s.User.Following,
		Repositories: s.User.RepoCount,
		Stars:        s.User.Stargazers,
		Forks:        s.User.Forks,
		DiskUsageKiB: s.User.DiskUsageKiB,
		APICalls:     s.Queries,
	}
	report.Contributions = contributionsReport{
		Total:        s.Summary.Total,
		Commits:      s.Summary.Commits,
		Issues:       s.Summary.Issues,
		PullRequests: s.Summary.PullRequests,
		Reviews:      s.Summary.Reviews,
		Years:        s.Summary.Years,
	}
	report.Streaks = streaksReport{
		Current:      s.Streaks.Current,
		Longest:      s.Streaks.Longest,
		BestCount:    s.Streaks.BestCount,
		Average:      s.Streaks.Average,
		BestDay:      dateOrEmpty(s.Streaks.BestDay),
		CurrentStart: dateOrEmpty(s.Streaks.CurrentStart),
		LongestStart: dateOrEmpty(s.Streaks.LongestStart),
		LongestEnd:   dateOrEmpty(s.Streaks.LongestEnd),
	}
	return report
}

type statsReport struct {
	Login         string              `json:"login"`
	Name          string              `json:"name,omitempty"`
	JoinedAt      string              `json:"joined_at"`
	Followers     int                 `json:"followers"`
	Following     int                 `json:"following"`
	Repositories  int                 `json:"repositories"`
	Stars         int                 `json:"stars"`
	Forks         int                 `json:"forks"`
	DiskUsageKiB  int                 `json:"disk_usage_kib"`
	Contributions contributionsReport `json:"contributions"`
	Streaks       streaksReport       `json:"streaks"`
	APICalls      int                 `json:"api_calls"`
}

type contributionsReport struct {
	Total        int   `json:"total"`
	Commits      int   `json:"commits"`
	Issues       int   `json:"issues"`
	PullRequests int   `json:"pull_requests"`
	Reviews      int   `json:"reviews"`
	Years        []int `json:"years"`
}

type streaksReport struct {
	Current      int     `json:"current"`
	CurrentStart string  `json:"current_start,omitempty"`
	Longest      int     `json:"longest"`
	LongestStart string  `json:"longest_start,omitempty"`
	LongestEnd   string  `json:"longest_end,omitempty"`
	BestDay      string  `json:"best_day,omitempty"`
	BestCount    int     `json:"best_count"`
	Average      float64 `json:"average"`
}

func dateOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
