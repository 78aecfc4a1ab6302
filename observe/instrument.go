package observe

import (
	"context"
	"time"
)

// Instrumenter wraps adapter calls with observability (tracing, metrics,
// logging). Callers bracket each guarded call with Begin and the returned
// done function.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Context: propagates context through tracing spans.
//   - Errors: errors passed to done are recorded, never modified.
type Instrumenter struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewInstrumenter creates a new Instrumenter with the given observability
// components.
func NewInstrumenter(tracer Tracer, metrics Metrics, logger Logger) *Instrumenter {
	return &Instrumenter{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Begin starts instrumentation for one call. It returns the span-carrying
// context and a done function the caller must invoke with the call's final
// error (nil on success).
func (i *Instrumenter) Begin(ctx context.Context, meta OpMeta) (context.Context, func(err error)) {
	ctx, span := i.tracer.StartSpan(ctx, meta)
	start := time.Now()

	done := func(err error) {
		duration := time.Since(start)

		// End span (records error status if err != nil)
		i.tracer.EndSpan(span, err)

		// Record metrics
		i.metrics.RecordCall(ctx, meta, duration, err)

		// Log the call
		opLogger := i.logger.WithOp(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			opLogger.Error(ctx, "sorbet call failed", fields...)
		} else {
			opLogger.Debug(ctx, "sorbet call completed", fields...)
		}
	}

	return ctx, done
}

// Trip records a circuit-breaker trip.
func (i *Instrumenter) Trip(ctx context.Context, kind string) {
	i.metrics.RecordTrip(ctx, kind)
	i.logger.Warn(ctx, "circuit breaker tripped", Field{Key: "failure_kind", Value: kind})
}

// NewInstrumenterFromObserver creates an Instrumenter from an Observer.
// This is a convenience function for common use cases.
func NewInstrumenterFromObserver(obs Observer) (*Instrumenter, error) {
	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewInstrumenter(tracer, metrics, obs.Logger()), nil
}

// NopInstrumenter returns an Instrumenter whose components all discard
// their input. Useful as a default when no Observer is configured.
func NopInstrumenter() *Instrumenter {
	return NewInstrumenter(newNoopTracer(), &noopMetrics{}, &noopLogger{})
}
