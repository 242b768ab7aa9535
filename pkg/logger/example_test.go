//go:build !integration

package logger_test

import (
	"fmt"
	"os"

	"github.com/tmih06/profilegen/pkg/logger"
)

// Note: Example functions cannot use t.Setenv() as they don't have access to *testing.T
// These need to remain using os.Setenv/Unsetenv

func ExampleNew() {
	// Set DEBUG environment variable to enable loggers
	os.Setenv("DEBUG", "cli:*")
	defer os.Unsetenv("DEBUG")

	// Create a logger for a specific namespace
	log := logger.New("cli:generate")

	// Check if logger is enabled
	if log.Enabled() {
		fmt.Println("Logger is enabled")
	}

	// Output: Logger is enabled
}

func ExampleLogger_Printf() {
	// Enable all loggers
	os.Setenv("DEBUG", "*")
	defer os.Unsetenv("DEBUG")

	log := logger.New("github:loc")

	// Printf uses standard fmt.Printf formatting
	log.Printf("Scanned %d repositories", 42)

	// Output to stderr: github:loc Scanned 42 repositories
}

func ExampleLogger_Print() {
	// Enable all loggers
	os.Setenv("DEBUG", "*")
	defer os.Unsetenv("DEBUG")

	log := logger.New("github:loc")

	// Print concatenates arguments like fmt.Sprint
	log.Print("Scanning", " ", "repositories")

	// Output to stderr: github:loc Scanning repositories +0ns
}

func ExampleNew_patterns() {
	// Example patterns for DEBUG environment variable

	// Enable all loggers
	os.Setenv("DEBUG", "*")

	// Enable all loggers in the github namespace
	os.Setenv("DEBUG", "github:*")

	// Enable multiple namespaces
	os.Setenv("DEBUG", "github:*,cli:*")

	// Enable all except specific patterns
	os.Setenv("DEBUG", "*,-github:client")

	// Enable namespace but exclude specific loggers
	os.Setenv("DEBUG", "github:*,-github:loc")

	defer os.Unsetenv("DEBUG")
}
