package worker

import (
	"context"
	"time"
)

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker runs a job on a fixed interval, backing off on errors
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick blocks until ctx is done, invoking onWork once per tick
func (w *TickWorker) StartTick(ctx context.Context, onWork func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = time.Second
	}

	errDelay := w.ErrDelay
	if errDelay <= 0 {
		errDelay = delay
	}

	dur := time.Millisecond
	timer := time.NewTimer(dur)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := onWork(ctx); err != nil {
				dur = errDelay
			} else {
				dur = delay
			}

			timer.Reset(dur)
		}
	}
}
