package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tmih06/profilegen/pkg/config"
	"github.com/tmih06/profilegen/pkg/console"
	"github.com/tmih06/profilegen/pkg/github"
	"github.com/tmih06/profilegen/pkg/logger"
	"github.com/tmih06/profilegen/pkg/profile"
	"github.com/tmih06/profilegen/pkg/tty"
)

var initLog = logger.New("cli:init")

// InitOptions configures the init scaffold.
type InitOptions struct {
	Dir   string
	Force bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Interactively set up a profile repository",
		Args:  cobra.MaximumNArgs(1),
		Long: `Walk through a short form and write the starter files: info.json with
your answers, a .env stub for the GitHub token, and optionally the
contribution snake workflow.

Existing files are kept unless --force is given.

Examples:
  profilegen init
  profilegen init my-profile
  profilegen init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")
			return RunInit(cmd.Context(), InitOptions{Dir: dir, Force: force})
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite existing files")
	return cmd
}

// RunInit collects the setup answers and writes the starter files.
func RunInit(ctx context.Context, opts InitOptions) error {
	if !tty.IsStdinTerminal() {
		return fmt.Errorf("init is interactive and requires a terminal")
	}

	if existing, err := config.Find(opts.Dir); err == nil && !opts.Force {
		fmt.Fprintln(os.Stderr, console.FormatErrorWithSuggestions(
			fmt.Sprintf("Found an existing config at %s.", console.ToRelativePath(existing)),
			[]string{"Edit it directly, or re-run with --force to start over."}))
		return fmt.Errorf("config already exists")
	}

	var (
		username       = detectUsername(ctx)
		birthdayInput  string
		includePrivate = true
		email          string
		website        string
		avatarPath     string
		addSnake       = true
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub username").
				Description("The account the cards are generated for.").
				Value(&username).
				Validate(validateUsername),
			huh.NewInput().
				Title("Birthday (YYYY-MM-DD)").
				Description("Drives the uptime line on the cards.").
				Value(&birthdayInput).
				Validate(validateBirthday),
			huh.NewConfirm().
				Title("Count private repositories?").
				Description("Private repo names are masked in all output.").
				Value(&includePrivate),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Contact email").
				Description("Shown in the Contact section. Leave empty to skip.").
				Value(&email),
			huh.NewInput().
				Title("Website").
				Description("Shown in the Contact section. Leave empty to skip.").
				Value(&website),
			huh.NewInput().
				Title("Avatar image path").
				Description("PNG or JPEG to render as ASCII art. Leave empty to skip.").
				Value(&avatarPath),
			huh.NewConfirm().
				Title("Add the contribution snake workflow?").
				Description("Writes .github/workflows/snake.yml.").
				Value(&addSnake),
		),
	).WithAccessible(console.IsAccessibleMode())

	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to collect setup answers: %w", err)
	}

	birthday, err := time.Parse("2006-01-02", strings.TrimSpace(birthdayInput))
	if err != nil {
		return fmt.Errorf("failed to parse birthday: %w", err)
	}

	scaffold := profile.ConfigScaffold{
		Username: strings.TrimSpace(username),
		Birthday: config.Birthday{
			Year:  birthday.Year(),
			Month: int(birthday.Month()),
			Day:   birthday.Day(),
		},
		IncludePrivate: includePrivate,
		Contact: []profile.ContactPair{
			{Key: "email", Value: strings.TrimSpace(email)},
			{Key: "website", Value: strings.TrimSpace(website)},
		},
		AvatarPath: strings.TrimSpace(avatarPath),
	}

	configPath, err := scaffold.WriteConfig(opts.Dir, opts.Force)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Wrote %s", console.ToRelativePath(configPath))))

	envPath, err := profile.WriteEnvStub(opts.Dir, opts.Force)
	switch {
	case errors.Is(err, profile.ErrExists):
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Keeping existing %s", console.ToRelativePath(envPath))))
	case err != nil:
		return err
	default:
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Wrote %s", console.ToRelativePath(envPath))))
	}

	if addSnake {
		snakePath, err := profile.WriteSnakeWorkflow(opts.Dir, scaffold.Username, opts.Force)
		switch {
		case errors.Is(err, profile.ErrExists):
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Keeping existing %s", console.ToRelativePath(snakePath))))
		case err != nil:
			return err
		default:
			fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Wrote %s", console.ToRelativePath(snakePath))))
		}
	}

	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, console.FormatLocationMessage(fmt.Sprintf("Profile files in %s", console.ToRelativePath(opts.Dir))))
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Next steps:")
	fmt.Fprintln(os.Stderr, console.FormatListItem("Put a GitHub token with repo and read:user scopes into .env"))
	fmt.Fprintln(os.Stderr, console.FormatListItem("Generate the cards:"))
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, console.FormatCommandMessage("  profilegen generate"))
	return nil
}

// detectUsername pre-fills the username from the token's account when a
// token is already configured. Best effort only.
func detectUsername(ctx context.Context) string {
	token := config.ResolveToken()
	if token == "" {
		return ""
	}
	client, err := github.NewClient(token)
	if err != nil {
		return ""
	}
	viewer, err := client.Viewer(ctx)
	if err != nil {
		initLog.Printf("Could not detect username: %s", err)
		return ""
	}
	initLog.Printf("Detected username %s", viewer.Login)
	return viewer.Login
}

func validateUsername(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if strings.ContainsAny(s, " /@") {
		return fmt.Errorf("enter the bare username, without @, spaces, or slashes")
	}
	return nil
}

func validateBirthday(s string) error {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter the date as YYYY-MM-DD")
	}
	if t.After(time.Now()) {
		return fmt.Errorf("birthday cannot be in the future")
	}
	return nil
}
