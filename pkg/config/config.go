// Package config loads and validates the generator configuration (info.json
// or info.yml) that describes the profile: the GitHub login, birthday, the
// static profile fields rendered on the cards, and the avatar used for ASCII
// art. Configuration is validated against an embedded JSON schema before
// defaults are applied, so a typoed key fails loudly instead of silently
// rendering a default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/tmih06/profilegen/pkg/logger"
)

var configLog = logger.New("config:load")

// ConfigFileNames are the file names probed, in order, when no explicit
// config path is given.
var ConfigFileNames = []string{"info.json", "info.yml", "info.yaml"}

// Birthday is a calendar date used to compute the profile's uptime.
type Birthday struct {
	Year  int `yaml:"year" json:"year"`
	Month int `yaml:"month" json:"month"`
	Day   int `yaml:"day" json:"day"`
}

// Time returns the birthday as a UTC timestamp at midnight.
func (b Birthday) Time() time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
}

// Profile holds the static fields rendered on the info cards. Zero values
// are replaced by defaults at load time.
type Profile struct {
	Title                string        `yaml:"title" json:"title"`
	OS                   string        `yaml:"os" json:"os"`
	Host                 string        `yaml:"host" json:"host"`
	Kernel               string        `yaml:"kernel" json:"kernel"`
	IDE                  string        `yaml:"ide" json:"ide"`
	LanguagesProgramming string        `yaml:"languages_programming" json:"languages_programming"`
	LanguagesComputer    string        `yaml:"languages_computer" json:"languages_computer"`
	LanguagesReal        string        `yaml:"languages_real" json:"languages_real"`
	HobbiesSoftware      string        `yaml:"hobbies_software" json:"hobbies_software"`
	HobbiesHardware      string        `yaml:"hobbies_hardware" json:"hobbies_hardware"`
	Contact              yaml.MapSlice `yaml:"contact" json:"contact"`
	AvatarPath           string        `yaml:"avatar_path" json:"avatar_path"`
	ASCIIWidth           int           `yaml:"ascii_width" json:"ascii_width"`
	ASCIIHeight          int           `yaml:"ascii_height" json:"ascii_height"`
}

// ContactItem is one display-ready contact entry.
type ContactItem struct {
	Label string
	Value string
}

// Config is the parsed generator configuration.
type Config struct {
	Username            string   `yaml:"username" json:"username"`
	Birthday            Birthday `yaml:"birthday" json:"birthday"`
	IncludePrivateRepos *bool    `yaml:"include_private_repos" json:"include_private_repos"`
	Profile             Profile  `yaml:"profile" json:"profile"`

	// Dir is the directory the config was loaded from. Relative paths in
	// the config (avatar, outputs) resolve against it.
	Dir string `yaml:"-" json:"-"`
}

// IncludePrivate reports whether private repositories are included in the
// lines-of-code scan. Unset defaults to true.
func (c *Config) IncludePrivate() bool {
	if c.IncludePrivateRepos == nil {
		return true
	}
	return *c.IncludePrivateRepos
}

// AvatarPath returns the absolute path of the configured avatar image, or an
// empty string when no avatar is configured.
func (c *Config) AvatarPath() string {
	if c.Profile.AvatarPath == "" {
		return ""
	}
	if filepath.IsAbs(c.Profile.AvatarPath) {
		return c.Profile.AvatarPath
	}
	return filepath.Join(c.Dir, c.Profile.AvatarPath)
}

// ContactItems returns the contact entries in file order, skipping empty
// values. Keys are title-cased for display ("email" becomes "Email").
func (c *Config) ContactItems() []ContactItem {
	items := make([]ContactItem, 0, len(c.Profile.Contact))
	for _, entry := range c.Profile.Contact {
		key, ok := entry.Key.(string)
		if !ok {
			continue
		}
		value := fmt.Sprintf("%v", entry.Value)
		if entry.Value == nil || value == "" {
			continue
		}
		items = append(items, ContactItem{Label: titleCase(key), Value: value})
	}
	return items
}

// Find locates the config file in dir, probing the well-known names.
func Find(dir string) (string, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no config file found in %s (looked for %s)", dir, strings.Join(ConfigFileNames, ", "))
}

// Load reads, validates, and defaults the config at path. A .env file next
// to the config is loaded into the environment first so tokens defined there
// are visible to the rest of the run.
func Load(path string) (*Config, error) {
	dir := filepath.Dir(path)
	loadDotEnv(dir)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := validateSchema(path, data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Dir = dir
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	configLog.Printf("Loaded config for %s from %s", cfg.Username, path)
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	p := &c.Profile
	setDefault(&p.Title, c.Username+"@github")
	setDefault(&p.OS, "Linux")
	setDefault(&p.Host, "Earth")
	setDefault(&p.Kernel, "Developer")
	setDefault(&p.IDE, "VSCode")
	setDefault(&p.LanguagesProgramming, "Python")
	setDefault(&p.LanguagesComputer, "HTML, CSS")
	setDefault(&p.LanguagesReal, "English")
	setDefault(&p.HobbiesSoftware, "Coding")
	setDefault(&p.HobbiesHardware, "Computers")
	if p.ASCIIWidth == 0 {
		p.ASCIIWidth = 40
	}
	if p.ASCIIHeight == 0 {
		p.ASCIIHeight = 25
	}
}

func (c *Config) validate() error {
	if c.Username == "" {
		return fmt.Errorf("username is required")
	}
	birthday := c.Birthday.Time()
	if birthday.Year() != c.Birthday.Year || int(birthday.Month()) != c.Birthday.Month || birthday.Day() != c.Birthday.Day {
		return fmt.Errorf("birthday %04d-%02d-%02d is not a valid date", c.Birthday.Year, c.Birthday.Month, c.Birthday.Day)
	}
	if birthday.After(time.Now()) {
		return fmt.Errorf("birthday %s is in the future", birthday.Format("2006-01-02"))
	}
	if c.Profile.ASCIIWidth < 1 || c.Profile.ASCIIHeight < 1 {
		return fmt.Errorf("ascii dimensions must be positive, got %dx%d", c.Profile.ASCIIWidth, c.Profile.ASCIIHeight)
	}
	return nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// loadDotEnv loads a .env file from dir when present. A missing file is
// fine; anything else is worth a debug line but never fatal.
func loadDotEnv(dir string) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		configLog.Printf("Failed to load %s: %v", path, err)
		return
	}
	configLog.Printf("Loaded environment from %s", path)
}

// ResolveToken returns the GitHub token from the environment, preferring
// ACCESS_TOKEN, then the gh CLI conventions.
func ResolveToken() string {
	for _, name := range []string{"ACCESS_TOKEN", "GH_TOKEN", "GITHUB_TOKEN"} {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// titleCase capitalizes each word of a key for display. Underscores read as
// word separators.
func titleCase(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == ' ' || r == '_'
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
