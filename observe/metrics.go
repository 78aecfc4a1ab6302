package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records adapter call and breaker metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one guarded call to the external service with
	// its duration and error status.
	RecordCall(ctx context.Context, meta OpMeta, duration time.Duration, err error)

	// RecordTrip records a circuit-breaker trip tagged with the failure
	// kind that armed it.
	RecordTrip(ctx context.Context, kind string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	tripCount    metric.Int64Counter
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"sorbet.call.total",
		metric.WithDescription("Total number of calls to the Sorbet capability surface"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"sorbet.call.errors",
		metric.WithDescription("Total number of failed Sorbet calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"sorbet.call.duration_ms",
		metric.WithDescription("Sorbet call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	tripCount, err := meter.Int64Counter(
		"sorbet.breaker.trips",
		metric.WithDescription("Circuit breaker trips by failure kind"),
		metric.WithUnit("{trip}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		tripCount:    tripCount,
	}, nil
}

// RecordCall records metrics for one guarded call.
func (m *metricsImpl) RecordCall(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(
		attribute.String("sorbet.operation", meta.Operation),
	)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordTrip records a breaker trip.
func (m *metricsImpl) RecordTrip(ctx context.Context, kind string) {
	m.tripCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("sorbet.failure_kind", kind),
	))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordCall(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordTrip(ctx context.Context, kind string) {}
