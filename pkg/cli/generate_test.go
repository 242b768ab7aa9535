//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmih06/profilegen/pkg/config"
	"github.com/tmih06/profilegen/pkg/github"
	"github.com/tmih06/profilegen/pkg/stats"
	"github.com/tmih06/profilegen/pkg/svgcard"
	"github.com/tmih06/profilegen/pkg/testutil"
)

func TestCardData(t *testing.T) {
	now := time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)
	cfg := &config.Config{
		Username: "octo",
		Birthday: config.Birthday{Year: 2000, Month: 1, Day: 31},
		Profile: config.Profile{
			Title:                "octo@github",
			OS:                   "Arch",
			Host:                 "Earth",
			Kernel:               "Developer",
			IDE:                  "Neovim",
			LanguagesProgramming: "Go, Python",
			LanguagesReal:        "English",
			HobbiesSoftware:      "CLIs",
			HobbiesHardware:      "Keyboards",
			Contact: yaml.MapSlice{
				{Key: "email", Value: "octo@example.com"},
				{Key: "discord", Value: "octo#1234"},
			},
		},
	}
	user := &github.UserStats{
		Login:      "octo",
		RepoCount:  12,
		Stargazers: 99,
		Followers:  42,
	}
	summary := &stats.ContributionSummary{
		Total:        1234,
		Commits:      1000,
		Issues:       34,
		PullRequests: 150,
		Reviews:      50,
	}
	streaks := stats.Streaks{
		Current:   3,
		Longest:   21,
		BestCount: 45,
		Average:   3.5,
	}
	loc := &github.LinesOfCode{Additions: 50000, Deletions: 20000}
	art := []string{"@@@", ":::"}

	data := cardData(cfg, user, summary, streaks, loc, art, now)

	assert.Equal(t, "octo@github", data.Title)
	assert.Equal(t, "Arch", data.OS)
	assert.Equal(t, "26 years, 2 months, 10 days", data.Uptime)
	assert.Equal(t, "Neovim", data.IDE)
	assert.Equal(t, []svgcard.Contact{
		{Label: "Email", Value: "octo@example.com"},
		{Label: "Discord", Value: "octo#1234"},
	}, data.Contacts)
	assert.Equal(t, art, data.ASCIIArt)

	assert.Equal(t, 1000, data.Commits)
	assert.Equal(t, 150, data.PRsOpened)
	assert.Equal(t, 50, data.PRsReviewed)
	assert.Equal(t, 34, data.Issues)
	assert.Equal(t, 3, data.CurrentStreak)
	assert.Equal(t, 21, data.LongestStreak)
	assert.Equal(t, 45, data.BestDayCount)
	assert.InDelta(t, 3.5, data.AvgPerDay, 0.001)

	assert.Equal(t, 12, data.Repos)
	assert.Equal(t, 99, data.Stars)
	assert.Equal(t, 1234, data.Contributions)
	assert.Equal(t, 42, data.Followers)
	assert.Equal(t, 50000, data.Additions)
	assert.Equal(t, 20000, data.Deletions)
}

func TestResolveConfigPathExplicit(t *testing.T) {
	path, err := resolveConfigPath(filepath.Join("some", "dir", "info.yml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("some", "dir", "info.yml"), path)
}

func TestResolveConfigPathDiscovers(t *testing.T) {
	dir := testutil.TempDir(t, "generate-*")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "info.json"), []byte(`{
  "username": "octo",
  "birthday": {"year": 2004, "month": 1, "day": 31}
}
`), 0o644))
	t.Chdir(dir)

	path, err := resolveConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, "info.json", filepath.Base(path))
	assert.FileExists(t, path)
}

func TestResolveConfigPathReportsMissing(t *testing.T) {
	t.Chdir(testutil.TempDir(t, "generate-*"))

	_, err := resolveConfigPath("")
	assert.ErrorContains(t, err, "no config file found")
}
