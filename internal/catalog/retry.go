package catalog

import (
	"context"
	"time"
)

// The retry policy is deliberately deterministic: up to three attempts with
// fixed delays between them, no jitter, so tests can assert the exact
// schedule. Only transient conditions (transport failures, 429, 5xx) are
// retried; rejections fail fast. When the budget is exhausted the last
// attempt's error is surfaced.
const retryMaxAttempts = 3

var backoffSchedule = []time.Duration{
	300 * time.Millisecond,
	800 * time.Millisecond,
	1500 * time.Millisecond,
}

func (c *Client) withRetry(ctx context.Context, op string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= retryMaxAttempts; attempt++ {
		lastErr = call()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) || attempt == retryMaxAttempts {
			return lastErr
		}
		if err := c.sleep(ctx, backoffSchedule[attempt-1]); err != nil {
			return err
		}
	}
	return lastErr
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
