// Package logger provides namespace-scoped debug logging controlled by the
// DEBUG environment variable, in the style of the npm debug package.
//
// Loggers are created with New("namespace:topic") and stay silent unless the
// DEBUG variable matches their namespace. Patterns are comma separated, may
// end with '*' to match a prefix, and may start with '-' to exclude:
//
//	DEBUG=*                    enable everything
//	DEBUG=cli:*                enable the cli namespace
//	DEBUG=cli:*,github:*       enable several namespaces
//	DEBUG=*,-github:retry      enable everything except one logger
//
// Output goes to stderr so it never mixes with command output.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes debug messages for a single namespace.
type Logger struct {
	namespace string
	enabled   bool

	mu   sync.Mutex
	out  io.Writer
	last time.Time
}

// New creates a logger for the given namespace. The DEBUG environment
// variable is consulted at creation time.
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   matches(os.Getenv("DEBUG"), namespace),
		out:       os.Stderr,
		last:      time.Now(),
	}
}

// Enabled reports whether this logger produces output.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf logs a formatted message when the logger is enabled.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Print logs its arguments concatenated like fmt.Sprint when the logger is
// enabled.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprint(args...))
}

func (l *Logger) write(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	elapsed := now.Sub(l.last)
	l.last = now
	fmt.Fprintf(l.out, "%s %s +%s\n", l.namespace, msg, elapsed)
}

// matches evaluates a DEBUG pattern list against a namespace. Exclusions win
// over inclusions regardless of order.
func matches(patterns, namespace string) bool {
	if patterns == "" {
		return false
	}
	included := false
	for _, raw := range strings.Split(patterns, ",") {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		negate := strings.HasPrefix(pattern, "-")
		if negate {
			pattern = pattern[1:]
		}
		if !matchPattern(pattern, namespace) {
			continue
		}
		if negate {
			return false
		}
		included = true
	}
	return included
}

func matchPattern(pattern, namespace string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(namespace, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == namespace
}
