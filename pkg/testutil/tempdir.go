// Package testutil provides shared test helpers. Temp directories are grouped
// under a single per-process run directory so leftovers from crashed runs are
// easy to find and sweep.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	testRunDir     string
	testRunDirOnce sync.Once
)

// GetTestRunDir returns the directory that holds all temp dirs created by
// this test process. The same directory is returned for the lifetime of the
// process.
func GetTestRunDir() string {
	testRunDirOnce.Do(func() {
		base := filepath.Join(os.TempDir(), "profilegen-test-runs")
		if err := os.MkdirAll(base, 0755); err != nil {
			testRunDir = os.TempDir()
			return
		}
		dir, err := os.MkdirTemp(base, fmt.Sprintf("run-%s-*", time.Now().Format("20060102-150405")))
		if err != nil {
			testRunDir = base
			return
		}
		testRunDir = dir
	})
	return testRunDir
}

// TempDir creates a temp directory matching pattern under the test run
// directory and removes it when the test finishes.
func TempDir(t testing.TB, pattern string) string {
	t.Helper()
	dir, err := os.MkdirTemp(GetTestRunDir(), pattern)
	if err != nil {
		t.Fatalf("failed to create temp directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(dir)
	})
	return dir
}

// StripYAMLCommentHeader removes the leading comment banner (and any blank
// lines) from generated YAML so tests can compare the document body. Content
// with no YAML after the comments is returned unchanged.
func StripYAMLCommentHeader(content string) string {
	lines := strings.Split(content, "\n")
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		start = i
		break
	}
	if start == -1 {
		return content
	}
	return strings.Join(lines[start:], "\n")
}
