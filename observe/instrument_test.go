package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestInstrumenter(t *testing.T) (*Instrumenter, *tracetest.SpanRecorder, *sdkmetric.ManualReader, *bytes.Buffer) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := newMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	var buf bytes.Buffer
	logger := NewLoggerWithWriter("debug", &buf)

	return NewInstrumenter(newTracer(tp.Tracer("test")), metrics, logger), recorder, reader, &buf
}

// TestInstrumenter_Success verifies span, metric, and log on a successful call.
func TestInstrumenter_Success(t *testing.T) {
	inst, recorder, reader, buf := newTestInstrumenter(t)

	_, done := inst.Begin(context.Background(), OpMeta{Operation: "definition"})
	done(nil)

	// Span ended with the right name
	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "sorbet.call.definition" {
		t.Errorf("span name = %q, want sorbet.call.definition", spans[0].Name())
	}

	// Call counted
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	if findMetric(rm, "sorbet.call.total") == nil {
		t.Error("sorbet.call.total metric not found")
	}

	// Logged at debug
	if !strings.Contains(buf.String(), "sorbet call completed") {
		t.Errorf("expected completion log, got %q", buf.String())
	}
}

// TestInstrumenter_Failure verifies the error is recorded everywhere.
func TestInstrumenter_Failure(t *testing.T) {
	inst, recorder, reader, buf := newTestInstrumenter(t)

	_, done := inst.Begin(context.Background(), OpMeta{Operation: "hover"})
	done(errors.New("sorbet crashed"))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	found := findMetric(rm, "sorbet.call.errors")
	if found == nil {
		t.Fatal("sorbet.call.errors metric not found")
	}
	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) == 0 || sum.DataPoints[0].Value != 1 {
		t.Errorf("expected 1 error recorded, got %+v", found.Data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}
	if entry["msg"] != "sorbet call failed" {
		t.Errorf("msg = %v, want 'sorbet call failed'", entry["msg"])
	}
	if entry["error"] != "sorbet crashed" {
		t.Errorf("error = %v, want 'sorbet crashed'", entry["error"])
	}
}

// TestInstrumenter_Trip verifies a breaker trip is counted and logged.
func TestInstrumenter_Trip(t *testing.T) {
	inst, _, reader, buf := newTestInstrumenter(t)

	inst.Trip(context.Background(), "timeout")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	if findMetric(rm, "sorbet.breaker.trips") == nil {
		t.Error("sorbet.breaker.trips metric not found")
	}

	if !strings.Contains(buf.String(), "circuit breaker tripped") {
		t.Errorf("expected trip log, got %q", buf.String())
	}
}

// TestNopInstrumenter verifies the no-op instrumenter is safe to use.
func TestNopInstrumenter(t *testing.T) {
	inst := NopInstrumenter()

	ctx, done := inst.Begin(context.Background(), OpMeta{Operation: "status"})
	if ctx == nil {
		t.Fatal("Begin returned nil context")
	}
	done(errors.New("ignored"))
	inst.Trip(context.Background(), "unknown")
}

// TestNewInstrumenterFromObserver verifies construction from an Observer.
func TestNewInstrumenterFromObserver(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "sorbetbridge"})
	if err != nil {
		t.Fatalf("NewObserver() error = %v", err)
	}

	inst, err := NewInstrumenterFromObserver(obs)
	if err != nil {
		t.Fatalf("NewInstrumenterFromObserver() error = %v", err)
	}

	_, done := inst.Begin(context.Background(), OpMeta{Operation: "definition"})
	done(nil)
}
