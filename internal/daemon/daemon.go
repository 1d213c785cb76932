// Package daemon runs the batch pipeline on a recurring schedule.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/batch"
)

// Daemon schedules recurring batch runs. Singleton mode keeps a slow batch
// from overlapping the next tick.
type Daemon struct {
	pipeline  *batch.Pipeline
	interval  time.Duration
	scheduler gocron.Scheduler
}

// New builds a Daemon running the pipeline every interval.
func New(pipeline *batch.Pipeline, interval time.Duration) (*Daemon, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Daemon{
		pipeline:  pipeline,
		interval:  interval,
		scheduler: scheduler,
	}, nil
}

// Run schedules the job and blocks until the context is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	_, err := d.scheduler.NewJob(
		gocron.DurationJob(d.interval),
		gocron.NewTask(func() {
			report, err := d.pipeline.Run(ctx)
			if err != nil {
				slog.Error("scheduled batch failed", "error", err)
				return
			}
			slog.Info("scheduled batch done",
				"succeeded", report.Succeeded,
				"failed", report.Failed,
				"skipped", report.Skipped,
			)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("schedule batch job: %w", err)
	}

	d.scheduler.Start()
	slog.Info("daemon started", "interval", d.interval)

	<-ctx.Done()
	if err := d.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	slog.Info("daemon stopped")
	return nil
}
