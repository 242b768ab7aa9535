package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmih06/profilegen/pkg/console"
	"github.com/tmih06/profilegen/pkg/logger"
	"github.com/tmih06/profilegen/pkg/profile"
)

var validateCmdLog = logger.New("cli:validate")

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Dir     string
	JSON    bool
	Verbose bool
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check the profile repository for problems",
		Args:  cobra.MaximumNArgs(1),
		Long: `Run the repository checks: actionlint over the workflow files, a GFM
render check over the README files, and the generator config schema.

The exit code is 1 when any check reports a finding, so validate slots
into CI next to the generate workflow.

Examples:
  profilegen validate
  profilegen validate --json | jq '.count'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			jsonOutput, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")
			return RunValidate(ValidateOptions{Dir: dir, JSON: jsonOutput, Verbose: verbose})
		},
	}
	addJSONFlag(cmd)
	return cmd
}

// validateReport is the machine-readable output of the validate command.
type validateReport struct {
	Findings []profile.Finding `json:"findings"`
	Count    int               `json:"count"`
}

// RunValidate runs all repository checks and reports the findings. A non-nil
// error is returned when anything was found, so the process exits 1.
func RunValidate(opts ValidateOptions) error {
	validateCmdLog.Printf("Validating %s", opts.Dir)
	findings, err := profile.ValidateAll(opts.Dir)
	if err != nil {
		return err
	}

	if opts.JSON {
		if findings == nil {
			findings = []profile.Finding{}
		}
		fmt.Print(console.RenderStruct(validateReport{Findings: findings, Count: len(findings)}))
		if len(findings) > 0 {
			return fmt.Errorf("found %d issue(s)", len(findings))
		}
		return nil
	}

	for _, finding := range findings {
		displayFinding(finding)
	}
	displayValidateSummary(opts.Dir, findings)

	if len(findings) > 0 {
		return fmt.Errorf("found %d issue(s)", len(findings))
	}
	return nil
}

// displayFinding renders one finding in compiler-error style, with a few
// lines of file context around the offending line when the file is
// readable.
func displayFinding(f profile.Finding) {
	var context []string
	if f.Line > 0 {
		if content, err := os.ReadFile(f.File); err == nil {
			lines := strings.Split(string(content), "\n")
			if f.Line <= len(lines) {
				start := max(1, f.Line-2)
				end := min(len(lines), f.Line+2)
				for i := start; i <= end; i++ {
					context = append(context, lines[i-1])
				}
			}
		}
	}

	errorType := "error"
	if strings.Contains(strings.ToLower(f.Kind), "warning") {
		errorType = "warning"
	}

	message := f.Message
	if docsURL := findingDocsURL(f.Kind); docsURL != "" {
		message = fmt.Sprintf("[%s] %s\n\n  📖 %s", f.Kind, f.Message, docsURL)
	} else if f.Kind != "" {
		message = fmt.Sprintf("[%s] %s", f.Kind, f.Message)
	}

	fmt.Fprint(os.Stderr, console.FormatError(console.CompilerError{
		Position: console.ErrorPosition{File: f.File, Line: f.Line, Column: f.Column},
		Type:     errorType,
		Message:  message,
		Context:  context,
	}))
}

// findingDocsURL maps an actionlint error kind to its documentation anchor.
// The repository's own check kinds have no docs page and return "".
func findingDocsURL(kind string) string {
	switch kind {
	case "", "readme", "config":
		return ""
	}

	anchor := kind
	switch kind {
	case "runner-label":
		anchor = "check-runner-labels"
	case "pyflakes":
		anchor = "check-pyflakes-integ"
	case "shellcheck":
		anchor = "check-shellcheck-integ"
	case "expression", "syntax-check":
		anchor = "check-syntax-expression"
	default:
		if !strings.HasPrefix(anchor, "check-") {
			anchor = "check-" + anchor
		}
	}
	return fmt.Sprintf("https://github.com/rhysd/actionlint/blob/main/docs/checks.md#%s", anchor)
}

// displayValidateSummary prints the closing summary block with a breakdown
// of findings by kind.
func displayValidateSummary(dir string, findings []profile.Finding) {
	separator := strings.Repeat("━", 60)

	fmt.Fprintf(os.Stderr, "\n%s\n", separator)
	fmt.Fprintf(os.Stderr, "%s\n", console.FormatInfoMessage("Validation Summary"))
	fmt.Fprintf(os.Stderr, "%s\n\n", separator)

	fmt.Fprintf(os.Stderr, "%s\n", console.FormatInfoMessage(fmt.Sprintf("Validated %s", dir)))

	if len(findings) == 0 {
		fmt.Fprintf(os.Stderr, "%s\n", console.FormatSuccessMessage("No issues found"))
		fmt.Fprintf(os.Stderr, "\n%s\n", separator)
		return
	}

	fmt.Fprintf(os.Stderr, "%s\n", console.FormatWarningMessage(fmt.Sprintf("Found %d issue(s)", len(findings))))

	byKind := make(map[string]int)
	for _, f := range findings {
		kind := f.Kind
		if kind == "" {
			kind = "other"
		}
		byKind[kind]++
	}
	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	fmt.Fprintf(os.Stderr, "\n%s\n", console.FormatInfoMessage("Issues by type:"))
	for _, kind := range kinds {
		fmt.Fprintf(os.Stderr, "  • %s: %d\n", kind, byKind[kind])
	}

	fmt.Fprintf(os.Stderr, "\n%s\n", separator)
}
