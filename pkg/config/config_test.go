//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmih06/profilegen/pkg/testutil"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := testutil.TempDir(t, "config-test")
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadJSONConfig(t *testing.T) {
	path := writeConfig(t, "info.json", `{
  "username": "octocat",
  "birthday": {"year": 2004, "month": 7, "day": 23},
  "profile": {
    "title": "octocat@home",
    "contact": {
      "email": "octo@cat.dev",
      "discord": "octocat#1234"
    }
  }
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "octocat", cfg.Username)
	assert.Equal(t, 2004, cfg.Birthday.Year)
	assert.Equal(t, "octocat@home", cfg.Profile.Title, "explicit title should win over the default")
	assert.Equal(t, "Linux", cfg.Profile.OS, "unset fields should fall back to defaults")
	assert.True(t, cfg.IncludePrivate(), "private repos should be included by default")
	assert.Equal(t, filepath.Dir(path), cfg.Dir)

	items := cfg.ContactItems()
	require.Len(t, items, 2)
	assert.Equal(t, ContactItem{Label: "Email", Value: "octo@cat.dev"}, items[0], "contact entries should keep file order")
	assert.Equal(t, ContactItem{Label: "Discord", Value: "octocat#1234"}, items[1])
}

func TestLoadYAMLConfig(t *testing.T) {
	path := writeConfig(t, "info.yml", `username: octocat
birthday:
  year: 1999
  month: 12
  day: 31
include_private_repos: false
profile:
  os: Arch Linux
  ascii_width: 50
  ascii_height: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Arch Linux", cfg.Profile.OS)
	assert.Equal(t, 50, cfg.Profile.ASCIIWidth)
	assert.Equal(t, 30, cfg.Profile.ASCIIHeight)
	assert.False(t, cfg.IncludePrivate(), "include_private_repos: false should be honored")
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "info.yml", `username: octocat
birthday:
  year: 2000
  month: 1
  day: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "octocat@github", cfg.Profile.Title)
	assert.Equal(t, "Linux", cfg.Profile.OS)
	assert.Equal(t, "Earth", cfg.Profile.Host)
	assert.Equal(t, "Developer", cfg.Profile.Kernel)
	assert.Equal(t, "VSCode", cfg.Profile.IDE)
	assert.Equal(t, "Python", cfg.Profile.LanguagesProgramming)
	assert.Equal(t, "HTML, CSS", cfg.Profile.LanguagesComputer)
	assert.Equal(t, "English", cfg.Profile.LanguagesReal)
	assert.Equal(t, "Coding", cfg.Profile.HobbiesSoftware)
	assert.Equal(t, "Computers", cfg.Profile.HobbiesHardware)
	assert.Equal(t, 40, cfg.Profile.ASCIIWidth)
	assert.Equal(t, 25, cfg.Profile.ASCIIHeight)
	assert.Empty(t, cfg.ContactItems())
}

func TestLoadRejectsInvalidConfigs(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "unknown top-level key",
			content:     `{"usrname": "octocat", "birthday": {"year": 2000, "month": 1, "day": 1}}`,
			errContains: "schema",
		},
		{
			name:        "missing username",
			content:     `{"birthday": {"year": 2000, "month": 1, "day": 1}}`,
			errContains: "schema",
		},
		{
			name:        "month out of range",
			content:     `{"username": "octocat", "birthday": {"year": 2000, "month": 13, "day": 1}}`,
			errContains: "schema",
		},
		{
			name:        "impossible calendar date",
			content:     `{"username": "octocat", "birthday": {"year": 2001, "month": 2, "day": 30}}`,
			errContains: "not a valid date",
		},
		{
			name:        "birthday in the future",
			content:     `{"username": "octocat", "birthday": {"year": 2999, "month": 1, "day": 1}}`,
			errContains: "in the future",
		},
		{
			name:        "zero ascii width",
			content:     `{"username": "octocat", "birthday": {"year": 2000, "month": 1, "day": 1}, "profile": {"ascii_width": 0}}`,
			errContains: "schema",
		},
		{
			name:        "wrong contact value type",
			content:     `{"username": "octocat", "birthday": {"year": 2000, "month": 1, "day": 1}, "profile": {"contact": {"email": ["a"]}}}`,
			errContains: "schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "info.json", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := testutil.TempDir(t, "config-test")
	_, err := Load(filepath.Join(dir, "info.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestFind(t *testing.T) {
	t.Run("prefers info.json over info.yml", func(t *testing.T) {
		dir := testutil.TempDir(t, "config-test")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "info.json"), []byte("{}"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "info.yml"), []byte(""), 0644))

		path, err := Find(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "info.json"), path)
	})

	t.Run("falls back to info.yml", func(t *testing.T) {
		dir := testutil.TempDir(t, "config-test")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "info.yml"), []byte(""), 0644))

		path, err := Find(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "info.yml"), path)
	})

	t.Run("reports missing config", func(t *testing.T) {
		dir := testutil.TempDir(t, "config-test")
		_, err := Find(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no config file found")
	})
}

func TestLoadReadsDotEnv(t *testing.T) {
	const probe = "PROFILEGEN_DOTENV_PROBE"
	t.Setenv(probe, "")
	os.Unsetenv(probe)

	dir := testutil.TempDir(t, "config-test")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(probe+"=from-dotenv\n"), 0644))
	path := filepath.Join(dir, "info.yml")
	require.NoError(t, os.WriteFile(path, []byte("username: octocat\nbirthday:\n  year: 2000\n  month: 1\n  day: 1\n"), 0644))

	_, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", os.Getenv(probe))
}

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name        string
		accessToken string
		ghToken     string
		githubToken string
		want        string
	}{
		{name: "access token wins", accessToken: "a", ghToken: "b", githubToken: "c", want: "a"},
		{name: "gh token before github token", ghToken: "b", githubToken: "c", want: "b"},
		{name: "github token last", githubToken: "c", want: "c"},
		{name: "no token", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ACCESS_TOKEN", tt.accessToken)
			t.Setenv("GH_TOKEN", tt.ghToken)
			t.Setenv("GITHUB_TOKEN", tt.githubToken)
			assert.Equal(t, tt.want, ResolveToken())
		})
	}
}

func TestContactItemsSkipsEmptyValues(t *testing.T) {
	path := writeConfig(t, "info.yml", `username: octocat
birthday:
  year: 2000
  month: 1
  day: 1
profile:
  contact:
    email: octo@cat.dev
    website: ""
    discord: octocat#1234
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	items := cfg.ContactItems()
	require.Len(t, items, 2, "empty contact values should be dropped")
	assert.Equal(t, "Email", items[0].Label)
	assert.Equal(t, "Discord", items[1].Label)
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"email", "Email"},
		{"discord", "Discord"},
		{"linkedin_url", "Linkedin Url"},
		{"x", "X"},
		{"Email", "Email"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, titleCase(tt.key))
		})
	}
}

func TestAvatarPath(t *testing.T) {
	cfg := &Config{Dir: filepath.Join("home", "octocat")}
	assert.Empty(t, cfg.AvatarPath(), "no avatar configured means no path")

	cfg.Profile.AvatarPath = "avatar.png"
	assert.Equal(t, filepath.Join("home", "octocat", "avatar.png"), cfg.AvatarPath())

	abs := filepath.Join(string(filepath.Separator), "tmp", "a.png")
	cfg.Profile.AvatarPath = abs
	assert.Equal(t, abs, cfg.AvatarPath())
}
