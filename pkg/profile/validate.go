// Package profile validates and scaffolds the profile repository surface:
// the workflow files under .github/workflows, the README files that embed
// the generated cards, the generator config, and the contribution-snake
// workflow users add alongside the cards.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rhysd/actionlint"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/tmih06/profilegen/pkg/config"
	"github.com/tmih06/profilegen/pkg/logger"
)

var validateLog = logger.New("profile:validate")

// Finding is one problem discovered by a repository check.
type Finding struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// String renders the finding in file:line:column style.
func (f Finding) String() string {
	switch {
	case f.Line > 0 && f.Column > 0:
		return fmt.Sprintf("%s:%d:%d: %s", f.File, f.Line, f.Column, f.Message)
	case f.Line > 0:
		return fmt.Sprintf("%s:%d: %s", f.File, f.Line, f.Message)
	default:
		return fmt.Sprintf("%s: %s", f.File, f.Message)
	}
}

// ValidateAll runs every repository check in dir and returns the combined
// findings: workflow lint, README renderability, and the config schema.
func ValidateAll(dir string) ([]Finding, error) {
	findings, err := LintWorkflows(dir)
	if err != nil {
		return nil, err
	}

	readme, err := CheckReadmes(dir)
	if err != nil {
		return nil, err
	}
	findings = append(findings, readme...)

	findings = append(findings, CheckConfig(dir)...)
	validateLog.Printf("Validated %s: %d finding(s)", dir, len(findings))
	return findings, nil
}

// LintWorkflows runs actionlint over every YAML file under .github/workflows
// in dir. A repository without a workflow directory has nothing to lint.
func LintWorkflows(dir string) ([]Finding, error) {
	wfDir := filepath.Join(dir, ".github", "workflows")
	entries, err := os.ReadDir(wfDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			validateLog.Printf("No workflow directory at %s", wfDir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read workflow directory: %w", err)
	}

	linter, err := actionlint.NewLinter(io.Discard, &actionlint.LinterOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow linter: %w", err)
	}

	var findings []Finding
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		path := filepath.Join(wfDir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read workflow %s: %w", path, err)
		}
		lintErrs, err := linter.Lint(path, content, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to lint %s: %w", path, err)
		}
		validateLog.Printf("Linted %s: %d error(s)", path, len(lintErrs))
		for _, lintErr := range lintErrs {
			findings = append(findings, Finding{
				File:    path,
				Line:    lintErr.Line,
				Column:  lintErr.Column,
				Kind:    lintErr.Kind,
				Message: lintErr.Message,
			})
		}
	}
	return findings, nil
}

// CheckReadmes verifies every README*.md in dir is non-empty and converts
// cleanly through the GFM renderer. A profile repository without any README
// is itself a finding since there is nothing to show the cards in.
func CheckReadmes(dir string) ([]Finding, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "README*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for README files: %w", err)
	}
	if len(matches) == 0 {
		return []Finding{{
			File:    filepath.Join(dir, "README.md"),
			Kind:    "readme",
			Message: "no README*.md files found",
		}}, nil
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var findings []Finding
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(bytes.TrimSpace(content)) == 0 {
			findings = append(findings, Finding{File: path, Kind: "readme", Message: "README is empty"})
			continue
		}
		var buf bytes.Buffer
		if err := md.Convert(content, &buf); err != nil {
			findings = append(findings, Finding{
				File:    path,
				Kind:    "readme",
				Message: fmt.Sprintf("markdown does not render: %v", err),
			})
		}
	}
	return findings, nil
}

// CheckConfig validates the generator config in dir against the embedded
// schema by loading it. Load failures come back as findings, not errors, so
// validate can report them next to the other checks.
func CheckConfig(dir string) []Finding {
	path, err := config.Find(dir)
	if err != nil {
		return []Finding{{
			File:    filepath.Join(dir, config.ConfigFileNames[0]),
			Kind:    "config",
			Message: err.Error(),
		}}
	}
	if _, err := config.Load(path); err != nil {
		return []Finding{{File: path, Kind: "config", Message: err.Error()}}
	}
	return nil
}

func isYAMLFile(name string) bool {
	return strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml")
}
