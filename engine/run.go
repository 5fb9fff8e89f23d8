package engine

import (
	"context"
	"time"
)

// Run drives the engine from a timer until ctx is cancelled, at roughly one
// frame per interval. Frame deltas come from the wall clock. Run occupies the
// calling goroutine; do not call other Engine methods concurrently.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	if err := e.Start(); err != nil {
		return err
	}
	if interval <= 0 {
		interval = time.Second / 60
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			e.Stop()
			return ctx.Err()
		case now := <-ticker.C:
			e.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Step runs n frames of a fixed dt. Headless runs use it to advance
// simulated time without waiting on the clock.
func (e *Engine) Step(n int, dt float64) {
	for i := 0; i < n && e.running; i++ {
		e.Tick(dt)
	}
}
