package loop

import (
	"context"
	"errors"
	"time"
)

// ErrNoFrame is returned by FrameClock.Wait when the last tick did not ask
// for another frame.
var ErrNoFrame = errors.New("no frame requested")

// FrameClock paces ticks to a fixed frame interval. A tick asks for its
// successor with RequestFrame; Wait sleeps out the rest of the interval.
type FrameClock struct {
	interval  time.Duration
	requested bool
	last      time.Time
}

var _ Scheduler = (*FrameClock)(nil)

// NewFrameClock creates a clock producing one frame per interval.
func NewFrameClock(interval time.Duration) *FrameClock {
	return &FrameClock{interval: interval}
}

// RequestFrame marks that another frame should follow the current one.
func (f *FrameClock) RequestFrame() {
	f.requested = true
}

// Wait blocks until the next frame is due and returns its start time.
// It returns ctx.Err() if ctx is cancelled first.
func (f *FrameClock) Wait(ctx context.Context) (time.Time, error) {
	if !f.requested {
		return time.Time{}, ErrNoFrame
	}
	f.requested = false

	if !f.last.IsZero() {
		if wait := f.interval - time.Since(f.last); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return time.Time{}, ctx.Err()
			case <-timer.C:
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	f.last = time.Now()
	return f.last, nil
}
