package profile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmih06/profilegen/pkg/config"
	"github.com/tmih06/profilegen/pkg/logger"
)

var scaffoldLog = logger.New("profile:scaffold")

//go:embed templates/snake.yml
var snakeWorkflowTemplate string

// ErrExists is returned when a scaffold target already exists and force was
// not given.
var ErrExists = errors.New("already exists")

// SnakeWorkflowPath is where the scaffolded workflow lands, relative to the
// repository root.
const SnakeWorkflowPath = ".github/workflows/snake.yml"

// SnakeWorkflow renders the embedded contribution-snake workflow for the
// given username: daily cron plus push-to-main triggers, the snk svg-only
// action with light and github-dark outputs, and the pages action publishing
// dist to the output branch.
func SnakeWorkflow(username string) string {
	return strings.ReplaceAll(snakeWorkflowTemplate, "__USERNAME__", username)
}

// WriteSnakeWorkflow writes the snake workflow into dir, creating the
// workflow directory as needed. An existing file is kept unless force is
// set.
func WriteSnakeWorkflow(dir, username string, force bool) (string, error) {
	path := filepath.Join(dir, filepath.FromSlash(SnakeWorkflowPath))
	if err := checkTarget(path, force); err != nil {
		return path, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create workflow directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(SnakeWorkflow(username)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write workflow: %w", err)
	}
	scaffoldLog.Printf("Wrote %s", path)
	return path, nil
}

// WriteEnvStub writes a starter .env next to the config so the token never
// has to live in the shell profile. An existing file is kept unless force is
// set.
func WriteEnvStub(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ".env")
	if err := checkTarget(path, force); err != nil {
		return path, err
	}
	content := "# GitHub personal access token used by profilegen (repo and read:user scopes).\nACCESS_TOKEN=\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write .env: %w", err)
	}
	scaffoldLog.Printf("Wrote %s", path)
	return path, nil
}

// ContactPair is one contact entry collected by init; the key is the config
// key ("email"), not the display label.
type ContactPair struct {
	Key   string
	Value string
}

// ConfigScaffold is the data the init flow collects for a starter
// info.json.
type ConfigScaffold struct {
	Username       string
	Birthday       config.Birthday
	IncludePrivate bool
	Contact        []ContactPair
	AvatarPath     string
}

type scaffoldProfile struct {
	Contact    contactObject `json:"contact,omitempty"`
	AvatarPath string        `json:"avatar_path,omitempty"`
}

type scaffoldFile struct {
	Username            string          `json:"username"`
	Birthday            config.Birthday `json:"birthday"`
	IncludePrivateRepos bool            `json:"include_private_repos"`
	Profile             scaffoldProfile `json:"profile"`
}

// contactObject marshals contact pairs as a JSON object in insertion order.
type contactObject []ContactPair

func (c contactObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RenderConfig renders the starter info.json. Empty contact values are
// dropped so the file starts clean.
func (s ConfigScaffold) RenderConfig() ([]byte, error) {
	contact := make(contactObject, 0, len(s.Contact))
	for _, pair := range s.Contact {
		if pair.Value == "" {
			continue
		}
		contact = append(contact, pair)
	}
	file := scaffoldFile{
		Username:            s.Username,
		Birthday:            s.Birthday,
		IncludePrivateRepos: s.IncludePrivate,
		Profile: scaffoldProfile{
			Contact:    contact,
			AvatarPath: s.AvatarPath,
		},
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteConfig writes the starter info.json into dir. An existing file is
// kept unless force is set.
func (s ConfigScaffold) WriteConfig(dir string, force bool) (string, error) {
	path := filepath.Join(dir, "info.json")
	if err := checkTarget(path, force); err != nil {
		return path, err
	}
	data, err := s.RenderConfig()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	scaffoldLog.Printf("Wrote %s", path)
	return path, nil
}

func checkTarget(path string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}
	return nil
}
