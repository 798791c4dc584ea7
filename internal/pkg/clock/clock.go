// Package clock provides time utilities for the application
package clock

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/cabeard21/ao-bin-dumps/internal/pkg/clock Clock

// Clock provides time functionality
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case
	Sleep(ctx context.Context, d time.Duration) error
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// Sleep waits on a timer so a canceled context wakes it early
func (c *Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}
