package console

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tmih06/profilegen/pkg/styles"
	"github.com/tmih06/profilegen/pkg/tty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows an animated progress indicator on stderr while a slow
// operation runs. Outside a terminal (or in accessible mode) Start prints the
// message once and the animation is skipped.
type Spinner struct {
	message string

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewSpinner creates a spinner with the given status message.
func NewSpinner(message string) *Spinner {
	return &Spinner{message: message}
}

// Start begins the animation. Calling Start on a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	if !tty.IsStderrTerminal() || IsAccessibleMode() {
		fmt.Fprintln(os.Stderr, FormatProgressMessage(s.message))
		return
	}
	s.running = true
	s.done = make(chan struct{})
	go s.spin(s.done)
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.done)
	s.running = false
	ClearLine()
}

// UpdateMessage changes the status message while the spinner runs.
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *Spinner) spin(done chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	frame := 0
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			message := s.message
			s.mu.Unlock()
			fmt.Fprintf(os.Stderr, "\r\x1b[K%s %s", styles.Info.Render(spinnerFrames[frame]), message)
			frame = (frame + 1) % len(spinnerFrames)
		}
	}
}
