//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmih06/profilegen/pkg/testutil"
)

func writeValidateFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunValidateCleanRepository(t *testing.T) {
	dir := testutil.TempDir(t, "validate-*")
	writeValidateFile(t, dir, "info.json", `{
  "username": "octo",
  "birthday": {"year": 2004, "month": 1, "day": 31}
}
`)
	writeValidateFile(t, dir, "README.md", "# octo\n\n![stats](dark_mode.svg)\n")

	err := RunValidate(ValidateOptions{Dir: dir})
	assert.NoError(t, err)
}

func TestRunValidateReportsFindings(t *testing.T) {
	dir := testutil.TempDir(t, "validate-*")
	writeValidateFile(t, dir, "info.json", `{
  "username": "octo",
  "birthday": {"year": 2004, "month": 1, "day": 31}
}
`)
	writeValidateFile(t, dir, "README.md", "   \n")

	err := RunValidate(ValidateOptions{Dir: dir})
	assert.ErrorContains(t, err, "1 issue")
}

func TestRunValidateJSONStillFailsOnFindings(t *testing.T) {
	dir := testutil.TempDir(t, "validate-*")
	writeValidateFile(t, dir, "README.md", "# octo\n")

	// No config file at all counts as a finding.
	err := RunValidate(ValidateOptions{Dir: dir, JSON: true})
	assert.ErrorContains(t, err, "issue")
}

func TestFindingDocsURL(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{kind: "", want: ""},
		{kind: "readme", want: ""},
		{kind: "config", want: ""},
		{kind: "runner-label", want: "https://github.com/rhysd/actionlint/blob/main/docs/checks.md#check-runner-labels"},
		{kind: "pyflakes", want: "https://github.com/rhysd/actionlint/blob/main/docs/checks.md#check-pyflakes-integ"},
		{kind: "shellcheck", want: "https://github.com/rhysd/actionlint/blob/main/docs/checks.md#check-shellcheck-integ"},
		{kind: "expression", want: "https://github.com/rhysd/actionlint/blob/main/docs/checks.md#check-syntax-expression"},
		{kind: "syntax-check", want: "https://github.com/rhysd/actionlint/blob/main/docs/checks.md#check-syntax-expression"},
		{kind: "events", want: "https://github.com/rhysd/actionlint/blob/main/docs/checks.md#check-events"},
		{kind: "deprecated-commands", want: "https://github.com/rhysd/actionlint/blob/main/docs/checks.md#check-deprecated-commands"},
	}
	for _, tt := range tests {
		name := tt.kind
		if name == "" {
			name = "empty"
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, findingDocsURL(tt.kind))
		})
	}
}
