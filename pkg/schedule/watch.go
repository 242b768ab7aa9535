package schedule

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tmih06/profilegen/pkg/logger"
)

var watchLog = logger.New("schedule:watch")

// DefaultDebounce is how long the watcher waits after the last filesystem
// event before running the job.
const DefaultDebounce = 500 * time.Millisecond

// Watcher runs a job when any of the watched files change. Bursts of events
// are coalesced into a single run.
type Watcher struct {
	// Paths are the files to watch. Their parent directories are registered
	// with fsnotify because editors that replace files on save would drop a
	// watch placed on the file itself.
	Paths []string
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
	Job      func(ctx context.Context) error
	// OnChange is called once per burst with the path that triggered it.
	OnChange func(path string)
	// OnError is called when a run or the watcher itself fails.
	OnError func(err error)
}

// Run blocks until ctx is cancelled or SIGINT/SIGTERM arrives.
func (w *Watcher) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(w.Paths))
	for _, path := range w.Paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watchLog.Printf("Watching %s for changes to %s", dir, filepath.Base(abs))
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			watchLog.Print("Stopping file watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			watchLog.Printf("Change detected: %s (%s)", event.Name, event.Op)
			if !pending && w.OnChange != nil {
				w.OnChange(abs)
			}
			pending = true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Printf("Watcher error: %s", err)
			if w.OnError != nil {
				w.OnError(fmt.Errorf("failed to watch files: %w", err))
			}

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.Job(ctx); err != nil {
				watchLog.Printf("Run failed: %s", err)
				if w.OnError != nil {
					w.OnError(err)
				}
			}
		}
	}
}
