package console

import (
	"fmt"
	"os"

	"github.com/tmih06/profilegen/pkg/tty"
)

// Screen control. Both functions are no-ops when the target stream is not a
// terminal, so redirected output never picks up ANSI sequences.

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen() {
	if !tty.IsStdoutTerminal() {
		return
	}
	fmt.Fprint(os.Stdout, "\x1b[2J\x1b[H")
}

// ClearLine erases the current stderr line.
func ClearLine() {
	if !tty.IsStderrTerminal() {
		return
	}
	fmt.Fprint(os.Stderr, "\r\x1b[K")
}
