package schedule

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tmih06/profilegen/pkg/logger"
)

var daemonLog = logger.New("schedule:daemon")

// Daemon runs a job at the fire times of a cron schedule until its context
// is cancelled or an interrupt signal arrives.
type Daemon struct {
	Schedule cron.Schedule
	// Job runs at every fire time. A failed run is reported through OnError
	// and does not stop the daemon.
	Job func(ctx context.Context) error
	// RunOnStart runs the job once immediately, before the first fire time.
	RunOnStart bool
	// OnNext is called with each upcoming fire time before the daemon sleeps.
	OnNext func(next time.Time)
	// OnError is called when a run fails.
	OnError func(err error)
}

// Run blocks until ctx is cancelled or SIGINT/SIGTERM arrives. Stopping is
// not an error: the in-flight run finishes and Run returns nil.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	daemonLog.Print("Starting schedule daemon")
	if d.RunOnStart {
		d.runOnce(ctx)
	}

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		next := d.Schedule.Next(time.Now())
		daemonLog.Printf("Next run at %s", next.Format(time.RFC3339))
		if d.OnNext != nil {
			d.OnNext(next)
		}
		timer.Reset(time.Until(next))

		select {
		case <-ctx.Done():
			daemonLog.Print("Stopping schedule daemon")
			return nil
		case <-timer.C:
			d.runOnce(ctx)
		}
	}
}

func (d *Daemon) runOnce(ctx context.Context) {
	if err := d.Job(ctx); err != nil {
		daemonLog.Printf("Run failed: %s", err)
		if d.OnError != nil {
			d.OnError(err)
		}
	}
}
