package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/logging"
	"github.com/preston-bernstein/cricket-sim-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingProvider wraps a ResultsProvider with exponential backoff, Retry-After handling
// and per-attempt metrics.
type retryingProvider struct {
	inner        ResultsProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are
// <= 0, defaults are used.
func NewRetryingProvider(inner ResultsProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initial time.Duration) ResultsProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff(
				backoff.WithInitialInterval(initial),
				backoff.WithMaxInterval(maxBackoff),
				backoff.WithMaxElapsedTime(0),
			)
		},
	}
}

func (r *retryingProvider) ListMatches(ctx context.Context) ([]domain.Match, error) {
	return withRetry(ctx, r, "list matches", func(ctx context.Context, p ResultsProvider) ([]domain.Match, error) {
		return p.ListMatches(ctx)
	})
}

func (r *retryingProvider) FetchResults(ctx context.Context, matchID int) (domain.SimulationResults, error) {
	return withRetry(ctx, r, "fetch results", func(ctx context.Context, p ResultsProvider) (domain.SimulationResults, error) {
		return p.FetchResults(ctx, matchID)
	})
}

func withRetry[T any](ctx context.Context, r *retryingProvider, op string, call func(context.Context, ResultsProvider) (T, error)) (T, error) {
	var zero T
	if r.inner == nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider unavailable")
		return zero, ErrProviderUnavailable
	}

	b := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)
	for attempt := 1; ; attempt++ {
		start := time.Now()
		result, err := call(ctx, r.inner)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rl.RetryAfter)
		}
		if !IsRetryable(err) {
			return zero, err
		}

		delay := computeDelay(err, b.NextBackOff())
		if delay == backoff.Stop {
			logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider "+op+" failed",
				"attempts", attempt, logging.FieldError, err)
			return zero, err
		}

		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider "+op+" retry",
			"attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), logging.FieldError, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

// computeDelay prefers an upstream Retry-After over the backoff schedule. A Stop from
// the schedule always wins.
func computeDelay(err error, scheduled time.Duration) time.Duration {
	if scheduled == backoff.Stop {
		return backoff.Stop
	}
	if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	return scheduled
}
