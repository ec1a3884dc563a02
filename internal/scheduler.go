package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rm-hull/render-postfx/internal/settings"
)

// WatchOptions describes an inbox directory that is swept on a fixed interval.
type WatchOptions struct {
	InputDir  string
	OutputDir string
	PoolSize  int
	Format    string
	Interval  time.Duration
}

func NewScheduler(opts WatchOptions, fx *settings.EffectSettings) (gocron.Scheduler, error) {
	if opts.Interval <= 0 {
		return nil, errors.New("interval must be positive")
	}

	// bad images are reported and retried on later sweeps; only a sweep
	// that could not run at all stops startup
	if err := sweep(opts, fx); err != nil {
		var imageErrs ImageErrors
		if !errors.As(err, &imageErrs) {
			return nil, fmt.Errorf("initial run of job failed: %w", err)
		}
		log.Printf("Initial run left %d images unprocessed", len(imageErrs))
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(opts.Interval),
		gocron.NewTask(sweep, opts, fx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Watching %s every %s", opts.InputDir, opts.Interval)
	scheduler.Start()
	return scheduler, nil
}

// ImageErrors holds the per-image failures of one sweep.
type ImageErrors []error

func (e ImageErrors) Error() string { return errors.Join(e...).Error() }

func (e ImageErrors) Unwrap() []error { return e }

// sweep processes whatever is new in the inbox. An empty inbox is not an error.
func sweep(opts WatchOptions, fx *settings.EffectSettings) error {
	batch, err := NewBatch(context.Background(), opts.InputDir, opts.OutputDir, opts.PoolSize, opts.Format, fx)
	if errors.Is(err, ErrNoImages) {
		return nil
	}
	if err != nil {
		return err
	}

	if errs := batch.Run(); len(errs) > 0 {
		log.Printf("Errors occurred: %v", errs)
		return ImageErrors(errs)
	}
	return nil
}
