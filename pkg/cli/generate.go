package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmih06/profilegen/pkg/ascii"
	"github.com/tmih06/profilegen/pkg/config"
	"github.com/tmih06/profilegen/pkg/console"
	"github.com/tmih06/profilegen/pkg/github"
	"github.com/tmih06/profilegen/pkg/logger"
	"github.com/tmih06/profilegen/pkg/stats"
	"github.com/tmih06/profilegen/pkg/svgcard"
)

var generateLog = logger.New("cli:generate")

const bannerWidth = 60

// GenerateOptions configures a full card regeneration.
type GenerateOptions struct {
	// ConfigPath points at an explicit config file. Empty means discover
	// one in the current directory.
	ConfigPath string
	// OutputDir receives the rendered SVG files. Empty means the config
	// file's directory.
	OutputDir string
	// SkipLOC skips the per-repository lines-of-code scan, the slowest and
	// most request-hungry step.
	SkipLOC bool
	// Template rewrites a hand-made SVG template in place instead of
	// rendering the built-in cards.
	Template string
	Verbose  bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the profile stats cards",
		Long: `Run the full pipeline: fetch user statistics and the complete
contribution history, calculate streaks, count lines of code across every
repository, render the avatar as ASCII art, and write the SVG cards.

The cards land next to the config file unless -o points elsewhere.

Examples:
  profilegen generate
  profilegen generate --skip-loc         # fast run without the LOC scan
  profilegen generate -o cards/          # write the SVG files to cards/
  profilegen generate --template my.svg  # update a hand-made template in place`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			outputDir, _ := cmd.Flags().GetString("output")
			skipLOC, _ := cmd.Flags().GetBool("skip-loc")
			template, _ := cmd.Flags().GetString("template")
			verbose, _ := cmd.Flags().GetBool("verbose")
			return RunGenerate(cmd.Context(), GenerateOptions{
				ConfigPath: configPath,
				OutputDir:  outputDir,
				SkipLOC:    skipLOC,
				Template:   template,
				Verbose:    verbose,
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Directory for the rendered SVG files (default: the config directory)")
	cmd.Flags().Bool("skip-loc", false, "Skip the lines-of-code scan")
	cmd.Flags().String("template", "", "Existing SVG template to update in place instead of rendering cards")
	return cmd
}

// RunGenerate executes the full pipeline, reporting progress on stderr.
func RunGenerate(ctx context.Context, opts GenerateOptions) error {
	start := time.Now()
	out := os.Stderr

	cfg, err := resolveConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	client, err := github.NewClient(config.ResolveToken())
	if err != nil {
		return err
	}

	fmt.Fprintln(out, strings.Repeat("=", bannerWidth))
	fmt.Fprintln(out, "GitHub Profile Stats Generator")
	fmt.Fprintln(out, strings.Repeat("=", bannerWidth))
	fmt.Fprintf(out, "\nUser: %s\n", cfg.Username)
	fmt.Fprintln(out, strings.Repeat("-", bannerWidth))

	now := time.Now()

	fmt.Fprintln(out, "[1/5] Fetching user statistics...")
	user, err := client.UserStats(ctx, cfg.Username)
	if err != nil {
		return fmt.Errorf("failed to fetch user statistics: %w", err)
	}
	name := user.Name
	if name == "" {
		name = user.Login
	}
	fmt.Fprintf(out, "       Name: %s\n", name)
	fmt.Fprintf(out, "       Joined GitHub: %s\n", stats.YearsAgo(now, user.CreatedAt))
	fmt.Fprintf(out, "       Followed by: %d users\n", user.Followers)

	fmt.Fprintln(out, "[2/5] Fetching contribution years...")
	summary, err := stats.Summary(ctx, client, cfg.Username, now)
	if err != nil {
		return fmt.Errorf("failed to fetch contribution history: %w", err)
	}
	if len(summary.Years) > 0 {
		fmt.Fprintf(out, "       Contributing since: %d\n", summary.Years[0])
	}

	fmt.Fprintln(out, "[3/5] Calculating contributions and streaks...")
	streaks := stats.CalculateStreaks(summary.Days, now)
	fmt.Fprintf(out, "       Contributions: %s\n", stats.CommaFormat(summary.Total))
	fmt.Fprintf(out, "       Longest streak: %d day%s\n", streaks.Longest, stats.FormatPlural(streaks.Longest))

	loc := &github.LinesOfCode{}
	if opts.SkipLOC {
		fmt.Fprintln(out, "[4/5] Skipping lines of code (--skip-loc)")
	} else {
		fmt.Fprintln(out, "[4/5] Fetching lines of code...")
		locOpts := github.LOCOptions{IncludePrivate: cfg.IncludePrivate()}
		var spin *console.Spinner
		if opts.Verbose {
			locOpts.Progress = func(line string) {
				fmt.Fprintf(out, "       %s\n", line)
			}
		} else {
			spin = console.NewSpinner("Scanning repositories...")
			spin.Start()
			locOpts.Progress = spin.UpdateMessage
		}
		loc, err = client.LinesOfCode(ctx, cfg.Username, locOpts)
		if spin != nil {
			spin.Stop()
		}
		if err != nil {
			return fmt.Errorf("failed to fetch lines of code: %w", err)
		}
		fmt.Fprintf(out, "       Lines added: %s\n", stats.CommaFormat(loc.Additions))
		fmt.Fprintf(out, "       Lines deleted: %s\n", stats.CommaFormat(loc.Deletions))
	}

	var art []string
	if avatarPath := cfg.AvatarPath(); avatarPath == "" {
		fmt.Fprintln(out, "[5/5] No avatar configured, skipping ASCII art")
	} else {
		fmt.Fprintf(out, "[5/5] Generating ASCII art from %s...\n", console.ToRelativePath(avatarPath))
		art, err = ascii.FromFile(avatarPath, cfg.Profile.ASCIIWidth, cfg.Profile.ASCIIHeight)
		if err != nil {
			reason := err.Error()
			if errors.Is(err, fs.ErrNotExist) {
				reason = "image not found"
			}
			fmt.Fprintf(out, "       Skipping ASCII art (%s)\n", reason)
			generateLog.Printf("ASCII art skipped: %s", err)
			art = nil
		} else {
			fmt.Fprintln(out, "       ASCII art generated successfully")
		}
	}

	data := cardData(cfg, user, summary, streaks, loc, art, now)

	if opts.Template != "" {
		fmt.Fprintln(out, "\n       Updating SVG template...")
		if err := svgcard.UpdateTemplate(opts.Template, svgcard.TemplateFields(data)); err != nil {
			return err
		}
		fmt.Fprintf(out, "       Updated: %s\n", console.ToRelativePath(opts.Template))
	} else {
		outputDir := opts.OutputDir
		if outputDir == "" {
			outputDir = cfg.Dir
		}
		fmt.Fprintln(out, "\n       Generating SVG files...")
		names, err := svgcard.WriteAll(outputDir, data)
		if err != nil {
			return err
		}
		for _, fileName := range names {
			fmt.Fprintf(out, "       Updated: %s\n", fileName)
		}
	}

	elapsed := time.Since(start)
	generateLog.Printf("Pipeline finished in %.2fs with %d API calls", elapsed.Seconds(), client.QueryCount())

	fmt.Fprintln(out)
	console.RenderComposedSections(
		console.LayoutTitleBox(fmt.Sprintf("%s (@%s)", name, user.Login), bannerWidth),
		console.LayoutInfoSection("Commits", stats.CommaFormat(summary.Commits)),
		console.LayoutInfoSection("Contributions", stats.CommaFormat(summary.Total)),
		console.LayoutInfoSection("Longest Streak", fmt.Sprintf("%d day%s", streaks.Longest, stats.FormatPlural(streaks.Longest))),
		console.LayoutInfoSection("Total time", fmt.Sprintf("%.2f seconds", elapsed.Seconds())),
		console.LayoutInfoSection("API calls", strconv.Itoa(client.QueryCount())),
	)
	fmt.Fprintln(out, "\nDone!")
	return nil
}

// resolveConfigPath returns the explicit path unchanged, or discovers a
// config file in the current directory when path is empty.
func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return config.Find(dir)
}

// resolveConfig loads an explicit config file, or discovers one in the
// current directory when path is empty.
func resolveConfig(path string) (*config.Config, error) {
	found, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	return config.Load(found)
}

// cardData assembles the renderer input from everything the pipeline
// fetched.
func cardData(cfg *config.Config, user *github.UserStats, summary *stats.ContributionSummary, streaks stats.Streaks, loc *github.LinesOfCode, art []string, now time.Time) *svgcard.Data {
	items := cfg.ContactItems()
	contacts := make([]svgcard.Contact, 0, len(items))
	for _, item := range items {
		contacts = append(contacts, svgcard.Contact{Label: item.Label, Value: item.Value})
	}

	return &svgcard.Data{
		Title:  cfg.Profile.Title,
		OS:     cfg.Profile.OS,
		Uptime: stats.Age(now, cfg.Birthday.Time()),
		Host:   cfg.Profile.Host,
		Kernel: cfg.Profile.Kernel,
		IDE:    cfg.Profile.IDE,

		LanguagesProgramming: cfg.Profile.LanguagesProgramming,
		LanguagesReal:        cfg.Profile.LanguagesReal,
		HobbiesSoftware:      cfg.Profile.HobbiesSoftware,
		HobbiesHardware:      cfg.Profile.HobbiesHardware,

		Contacts: contacts,
		ASCIIArt: art,

		Commits:       summary.Commits,
		PRsOpened:     summary.PullRequests,
		PRsReviewed:   summary.Reviews,
		Issues:        summary.Issues,
		CurrentStreak: streaks.Current,
		LongestStreak: streaks.Longest,
		BestDayCount:  streaks.BestCount,
		AvgPerDay:     streaks.Average,

		Repos:         user.RepoCount,
		Stars:         user.Stargazers,
		Contributions: summary.Total,
		Followers:     user.Followers,

		Additions: loc.Additions,
		Deletions: loc.Deletions,
	}
}
