package resilience

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout is the deadline applied when GuardConfig.Timeout is unset.
const DefaultTimeout = 5 * time.Second

// GuardConfig configures the timeout guard.
type GuardConfig struct {
	// Timeout is the maximum duration for a guarded call.
	// Default: 5 seconds
	Timeout time.Duration
}

// Guard bounds the latency of calls to an external service and reports
// outcomes to a Breaker: successes clear the failure count, timeouts count
// as failures. Errors raised by the call itself are propagated verbatim
// and left for the caller to classify and record.
type Guard struct {
	config  GuardConfig
	breaker *Breaker
}

// NewGuard creates a timeout guard feeding outcomes into breaker.
func NewGuard(breaker *Breaker, config GuardConfig) *Guard {
	// Apply defaults
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &Guard{config: config, breaker: breaker}
}

// Config returns the guard configuration.
func (g *Guard) Config() GuardConfig {
	return g.config
}

// Call runs fn under the guard's deadline. Exactly one of three outcomes
// is produced:
//
//   - fn returns a value in time: the breaker records a success and Call
//     returns (value, true, nil).
//
//   - fn returns an error in time: the error is propagated unchanged as
//     (zero, false, err) with no breaker feedback; the caller decides how
//     to classify and record it.
//
//   - the deadline fires first: the breaker records a timeout failure and
//     Call returns (zero, false, nil) — absence of data, not an error.
//
// Cancellation of the parent context propagates ctx.Err() without breaker
// feedback; a caller giving up is not a service failure. The deadline
// timer is always released. Call is a function rather than a method so it
// can be generic over the result type.
func Call[T any](ctx context.Context, g *Guard, operation string, fn func(context.Context) (T, error)) (T, bool, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		v, err := fn(ctx)
		done <- outcome{value: v, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			// A DeadlineExceeded raised after our own deadline fired is
			// the timeout, not a service rejection.
			if errors.Is(out.err, context.DeadlineExceeded) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				g.breaker.RecordFailure(FailureTimeout, operation)
				return zero, false, nil
			}
			return zero, false, out.err
		}
		g.breaker.RecordSuccess()
		return out.value, true, nil

	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			g.breaker.RecordFailure(FailureTimeout, operation)
			return zero, false, nil
		}
		return zero, false, ctx.Err()
	}
}

// Execute is the error-only form of Call. The timeout sentinel surfaces
// as ErrTimeout so callers composing with retry logic can match on it.
func (g *Guard) Execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	_, ok, err := Call(ctx, g, operation, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrTimeout
	}
	return nil
}
