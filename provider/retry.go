package provider

import (
	"context"
	"time"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/logger"
	"github.com/traduckxion/transcribe/resilience"
)

// WithRetry re-executes failed calls according to cfg. When cfg.RetryIf is
// nil only retryable AppErrors are retried.
func WithRetry[I, O any](cfg resilience.RetryConfig) Middleware[I, O] {
	if cfg.RetryIf == nil {
		cfg.RetryIf = RetryableError
	}
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &retryRR[I, O]{inner: inner, cfg: cfg}
	}
}

// RetryableError reports whether err is an AppError flagged retryable.
func RetryableError(err error) bool {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Retryable
	}
	return false
}

type retryRR[I, O any] struct {
	inner RequestResponse[I, O]
	cfg   resilience.RetryConfig
}

func (r *retryRR[I, O]) Name() string                         { return r.inner.Name() }
func (r *retryRR[I, O]) IsAvailable(ctx context.Context) bool { return r.inner.IsAvailable(ctx) }

func (r *retryRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	cfg := r.cfg
	onRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		logger.Get("provider").WithContext(ctx).Debug("retrying provider call", logger.Fields(
			logger.FieldProvider, r.inner.Name(),
			"attempt", attempt,
			"backoff", backoff.String(),
			logger.FieldError, err.Error(),
		))
		if onRetry != nil {
			onRetry(attempt, err, backoff)
		}
	}
	return resilience.Retry(ctx, cfg, func() (O, error) {
		return r.inner.Execute(ctx, input)
	})
}
