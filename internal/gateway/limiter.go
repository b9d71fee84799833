package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter enforces a minimum interval between consecutive outbound calls
// to one service. It is the only state shared across runs; cache hits never
// touch it.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewLimiter constructs a limiter with the given minimum spacing.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepWithContext,
	}
}

// Wait blocks until the minimum interval since the previous call has
// elapsed, then claims the current slot.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval <= 0 {
		return nil
	}

	l.mu.Lock()
	now := l.now()
	wait := l.interval - now.Sub(l.last)
	if wait < 0 {
		wait = 0
	}
	l.last = now.Add(wait)
	l.mu.Unlock()

	return l.sleep(ctx, wait)
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("gateway: wait canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
