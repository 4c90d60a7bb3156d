package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPollExhausted is returned when a job is still running after the
// configured attempts or deadline.
var ErrPollExhausted = errors.New("poll budget exhausted")

// PollConfig bounds a status-polling loop.
type PollConfig struct {
	// Interval is the delay before the second check. Defaults to 3s.
	Interval time.Duration `mapstructure:"interval"`
	// BackoffFactor grows the interval between checks. 1 keeps it fixed.
	BackoffFactor float64 `mapstructure:"backoff_factor"`
	// MaxInterval caps the grown interval.
	MaxInterval time.Duration `mapstructure:"max_interval"`
	// MaxAttempts is the number of status checks before giving up. Defaults to 100.
	MaxAttempts int `mapstructure:"max_attempts"`
	// Timeout is the wall-clock budget for the whole loop. Defaults to 10m.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultPollConfig checks every 3 seconds for at most 10 minutes.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		Interval:      3 * time.Second,
		BackoffFactor: 1,
		MaxInterval:   30 * time.Second,
		MaxAttempts:   100,
		Timeout:       10 * time.Minute,
	}
}

func (c *PollConfig) applyDefaults() {
	d := DefaultPollConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.BackoffFactor < 1 {
		c.BackoffFactor = 1
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = d.MaxInterval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
}

// PollExhaustedError reports how far a poll got before its budget ran out.
type PollExhaustedError struct {
	Attempts int
	Elapsed  time.Duration
}

func (e *PollExhaustedError) Error() string {
	return fmt.Sprintf("%v after %d attempts (%s)", ErrPollExhausted, e.Attempts, e.Elapsed.Round(time.Millisecond))
}

func (e *PollExhaustedError) Unwrap() error { return ErrPollExhausted }

// Poll calls check until it reports done, returns an error, or the budget
// runs out. The first check happens immediately. Cancellation of ctx by the
// caller returns ctx.Err(); hitting the configured Timeout returns a
// *PollExhaustedError so callers can tell a stuck job from an abandoned one.
func Poll[T any](ctx context.Context, cfg PollConfig, check func(ctx context.Context) (T, bool, error)) (T, int, error) {
	var zero T
	cfg.applyDefaults()

	start := time.Now()
	pollCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	interval := cfg.Interval
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		v, done, err := check(pollCtx)
		if err != nil {
			if ctx.Err() == nil && pollCtx.Err() != nil {
				return zero, attempt, &PollExhaustedError{Attempts: attempt, Elapsed: time.Since(start)}
			}
			return zero, attempt, err
		}
		if done {
			return v, attempt, nil
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		if err := sleep(pollCtx, interval); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, attempt, ctxErr
			}
			return zero, attempt, &PollExhaustedError{Attempts: attempt, Elapsed: time.Since(start)}
		}
		interval = time.Duration(float64(interval) * cfg.BackoffFactor)
		if interval > cfg.MaxInterval {
			interval = cfg.MaxInterval
		}
	}

	return zero, cfg.MaxAttempts, &PollExhaustedError{Attempts: cfg.MaxAttempts, Elapsed: time.Since(start)}
}
