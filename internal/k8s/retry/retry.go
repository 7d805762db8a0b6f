package retry

import (
	"context"
	"time"

	"github.com/katyella/kubex/internal/logging"
	"github.com/katyella/kubex/internal/metrics"
)

// Operation is a remote call that can be invoked more than once.
type Operation[T any] func(ctx context.Context) (T, error)

// Do runs op until it succeeds or the policy gives up, and returns the
// result of the last attempt. The error from the final attempt is returned
// as is. If ctx is cancelled during a backoff wait, ctx.Err() is returned.
func Do[T any](ctx context.Context, policy Policy, op Operation[T]) (T, error) {
	var zero T
	policy = policy.normalize()
	logger := logging.FromContext(ctx)
	backoff := policy.InitialBackoff()

	for attempt := 1; ; attempt++ {
		metrics.RetryAttemptsTotal.Inc()

		result, err := op(ctx)
		if err == nil {
			metrics.RetryOutcomesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
			return result, nil
		}

		if policy.limit.exhausted(attempt) {
			metrics.RetryOutcomesTotal.WithLabelValues(metrics.OutcomeExhausted).Inc()
			logger.Debug("retry attempts exhausted", "attempts", attempt, "error", err)
			return zero, err
		}
		if !policy.classifier(err) {
			metrics.RetryOutcomesTotal.WithLabelValues(metrics.OutcomeFatal).Inc()
			return zero, err
		}

		logger.Debug("retrying operation", "attempt", attempt, "backoff", backoff, "error", err)

		if err := policy.wait(ctx, backoff); err != nil {
			metrics.RetryOutcomesTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
			return zero, err
		}
		backoff = policy.NextBackoff(backoff)
	}
}

// Run is Do for operations without a result.
func Run(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	_, err := Do(ctx, policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func (p Policy) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := p.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C():
		return nil
	}
}
