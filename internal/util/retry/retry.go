package retry

import (
	"context"
	"fmt"
	"time"
)

// Schedule is an ordered list of waits. Each wait precedes exactly one
// attempt.
type Schedule []time.Duration

// TotalWait returns the sum of all waits in the schedule.
func (s Schedule) TotalWait() time.Duration {
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total
}

// Result reports what a schedule-driven retry did.
type Result struct {
	// Attempts is the number of attempts made (0 when the context was
	// cancelled before the first wait elapsed).
	Attempts int

	// Waited is the cumulative wait time before the final outcome.
	Waited time.Duration
}

// WithSchedule runs operation once per schedule entry, waiting the entry's
// duration first. It stops on the first success. When every attempt fails,
// the last error is returned alongside the accounting; the caller decides
// how to report the exhausted schedule.
func WithSchedule(ctx context.Context, schedule Schedule, operation func() error) (Result, error) {
	var res Result
	var lastErr error

	for _, wait := range schedule {
		select {
		case <-ctx.Done():
			return res, fmt.Errorf("cancelled after %d attempts: %w", res.Attempts, ctx.Err())
		case <-time.After(wait):
		}
		res.Waited += wait

		res.Attempts++
		if lastErr = operation(); lastErr == nil {
			return res, nil
		}
	}

	return res, fmt.Errorf("all %d attempts failed over %v: %w", res.Attempts, res.Waited, lastErr)
}
